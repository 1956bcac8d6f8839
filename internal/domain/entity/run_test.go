package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRunConfig() RunConfig {
	return RunConfig{
		URL:              "https://example.com/video.mp4",
		Range:            TimeRange{Start: 0, End: 10, StartRaw: "00:00", EndRaw: "00:10"},
		FrameInterval:    1,
		ImageFormat:      "jpg",
		GIFFrameDuration: 100 * time.Millisecond,
	}
}

func TestNewRunConfig(t *testing.T) {
	cfg := NewRunConfig(validRunConfig())
	assert.NotEqual(t, uuid.Nil, cfg.RunID)

	other := NewRunConfig(validRunConfig())
	assert.NotEqual(t, cfg.RunID, other.RunID)
}

func TestRunConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validRunConfig().Validate())
	})

	t.Run("valid png", func(t *testing.T) {
		cfg := validRunConfig()
		cfg.ImageFormat = "png"
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing url", func(t *testing.T) {
		cfg := validRunConfig()
		cfg.URL = ""
		assert.ErrorIs(t, cfg.Validate(), ErrValidation)
	})

	t.Run("inverted range", func(t *testing.T) {
		cfg := validRunConfig()
		cfg.Range = TimeRange{Start: 10, End: 5}
		assert.ErrorIs(t, cfg.Validate(), ErrValidation)
	})

	t.Run("zero interval", func(t *testing.T) {
		cfg := validRunConfig()
		cfg.FrameInterval = 0
		assert.ErrorIs(t, cfg.Validate(), ErrValidation)
	})

	t.Run("negative interval", func(t *testing.T) {
		cfg := validRunConfig()
		cfg.FrameInterval = -3
		assert.ErrorIs(t, cfg.Validate(), ErrValidation)
	})

	t.Run("unsupported format", func(t *testing.T) {
		cfg := validRunConfig()
		cfg.ImageFormat = "bmp"
		assert.ErrorIs(t, cfg.Validate(), ErrValidation)
	})

	t.Run("gif duration too small", func(t *testing.T) {
		cfg := validRunConfig()
		cfg.GenerateGIF = true
		cfg.GIFFrameDuration = 0
		assert.ErrorIs(t, cfg.Validate(), ErrValidation)
	})

	t.Run("gif duration ignored when gif disabled", func(t *testing.T) {
		cfg := validRunConfig()
		cfg.GenerateGIF = false
		cfg.GIFFrameDuration = 0
		require.NoError(t, cfg.Validate())
	})
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "My Video", want: "My Video"},
		{name: "allowed punctuation", input: "clip-01_(final).v2", want: "clip-01_(final).v2"},
		{name: "strips slashes", input: "a/b\\c", want: "abc"},
		{name: "strips unicode", input: "café time☕", want: "caf time"},
		{name: "strips quotes and colons", input: `"Go: The Movie"`, want: "Go The Movie"},
		{name: "trims whitespace", input: "  spaced  ", want: "spaced"},
		{name: "empty", input: "", want: ""},
		{name: "all illegal", input: "///???", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeTitle(tt.input))
		})
	}
}
