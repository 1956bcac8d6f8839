package config

import (
	"github.com/caarlos0/env/v11"
)

// Config holds the environment-level defaults. Command-line flags take
// precedence over everything here.
type Config struct {
	LogLevel string `env:"FRAMEDUMP_LOG_LEVEL" envDefault:"info"`

	UserAgent      string `env:"FRAMEDUMP_USER_AGENT"       envDefault:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
	HTTPTimeoutSec int    `env:"FRAMEDUMP_HTTP_TIMEOUT_SEC" envDefault:"600"`

	ImageFormat   string `env:"FRAMEDUMP_IMAGE_FORMAT"    envDefault:"jpg"`
	GIFDurationMs int    `env:"FRAMEDUMP_GIF_DURATION_MS" envDefault:"100"`
	OutputDir     string `env:"FRAMEDUMP_OUTPUT_DIR"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
