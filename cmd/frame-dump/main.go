package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/hvpkod/frame-dump/internal/domain/entity"
	"github.com/hvpkod/frame-dump/internal/infra/archive"
	"github.com/hvpkod/frame-dump/internal/infra/config"
	"github.com/hvpkod/frame-dump/internal/infra/download"
	"github.com/hvpkod/frame-dump/internal/infra/ffmpeg"
	"github.com/hvpkod/frame-dump/internal/infra/gif"
	"github.com/hvpkod/frame-dump/internal/infra/httpclient"
	"github.com/hvpkod/frame-dump/internal/usecase"
	"github.com/hvpkod/frame-dump/pkg/logger"
)

// Exit codes by failure class.
const (
	exitValidation = 2
	exitDownload   = 3
	exitDecode     = 4
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	cmd := newCommand(cfg)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		// cli.Exit errors carry their own code and are handled by urfave.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "frame-dump",
		Usage:     "download a video and extract frames from a time range",
		ArgsUsage: "<url> <start mm:ss> <end mm:ss>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "frame_interval",
				Usage: "keep every k-th decoded frame",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "remove_video",
				Usage: "delete the downloaded video after extraction",
			},
			&cli.BoolFlag{
				Name:  "generate_gif",
				Usage: "assemble the extracted frames into frames.gif",
			},
			&cli.IntFlag{
				Name:  "gif_duration",
				Usage: "display duration of each gif frame in milliseconds",
				Value: int64(cfg.GIFDurationMs),
			},
			&cli.BoolFlag{
				Name:  "save_meta",
				Usage: "write a meta.json describing the run",
			},
			&cli.BoolFlag{
				Name:  "zip",
				Usage: "bundle the extracted frames into frames.zip",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "output directory, defaults to the sanitized video title",
				Value: cfg.OutputDir,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "image format for extracted frames, jpg or png",
				Value: cfg.ImageFormat,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, cfg)
		},
	}
}

// buildRunConfig maps the parsed command line onto a RunConfig with a
// fresh run ID. urfave's integer accessors return int64.
func buildRunConfig(cmd *cli.Command) (entity.RunConfig, error) {
	rng, err := entity.NewTimeRange(cmd.Args().Get(1), cmd.Args().Get(2))
	if err != nil {
		return entity.RunConfig{}, err
	}

	return entity.NewRunConfig(entity.RunConfig{
		URL:              cmd.Args().Get(0),
		Range:            rng,
		FrameInterval:    int(cmd.Int("frame_interval")),
		ImageFormat:      cmd.String("format"),
		RemoveVideo:      cmd.Bool("remove_video"),
		GenerateGIF:      cmd.Bool("generate_gif"),
		GIFFrameDuration: time.Duration(cmd.Int("gif_duration")) * time.Millisecond,
		ZipFrames:        cmd.Bool("zip"),
		SaveMeta:         cmd.Bool("save_meta"),
		OutputDir:        cmd.String("output"),
	}), nil
}

func run(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	if cmd.Args().Len() != 3 {
		return cli.Exit("usage: frame-dump <url> <start mm:ss> <end mm:ss>", exitValidation)
	}

	level := cfg.LogLevel
	if cmd.Bool("debug") {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to initialize logger: %v", err), 1)
	}
	defer log.Sync()

	runCfg, err := buildRunConfig(cmd)
	if err != nil {
		return cli.Exit(err.Error(), exitValidation)
	}

	httpClient, err := httpclient.New(time.Duration(cfg.HTTPTimeoutSec) * time.Second)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to build http client: %v", err), 1)
	}

	uc := usecase.NewExtractFramesUseCase(
		download.NewDownloader(httpClient, cfg.UserAgent, log),
		ffmpeg.NewExtractor(runCfg.ImageFormat, log),
		gif.NewEncoder(log),
		archive.NewWriter(),
		log,
	)

	result, err := uc.Execute(ctx, runCfg)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		return cli.Exit(err.Error(), exitCode(err))
	}

	log.Info("run finished",
		zap.String("output_dir", result.OutputDir),
		zap.Int("frame_count", len(result.Frames)),
	)
	return nil
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return exitValidation
	case errors.Is(err, entity.ErrDownload):
		return exitDownload
	case errors.Is(err, entity.ErrDecode):
		return exitDecode
	default:
		return 1
	}
}
