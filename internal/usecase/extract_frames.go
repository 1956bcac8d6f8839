package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/hvpkod/frame-dump/internal/domain/entity"
	"github.com/hvpkod/frame-dump/internal/domain/port"
)

// ExtractFramesUseCase runs the whole pipeline: resolve title, download,
// sample frames, then the optional post-processing stages. Strictly
// sequential; the first fatal error aborts the run.
type ExtractFramesUseCase struct {
	fetcher   port.VideoFetcher
	extractor port.FrameExtractor
	animator  port.Animator
	archiver  port.Archiver
	logger    *zap.Logger
}

func NewExtractFramesUseCase(
	fetcher port.VideoFetcher,
	extractor port.FrameExtractor,
	animator port.Animator,
	archiver port.Archiver,
	logger *zap.Logger,
) *ExtractFramesUseCase {
	return &ExtractFramesUseCase{
		fetcher:   fetcher,
		extractor: extractor,
		animator:  animator,
		archiver:  archiver,
		logger:    logger,
	}
}

// RunResult describes everything one run produced.
type RunResult struct {
	OutputDir string
	Asset     entity.VideoAsset
	Frames    []entity.FrameRecord
	GIFPath   string
	ZipPath   string
	MetaPath  string
}

func (uc *ExtractFramesUseCase) Execute(ctx context.Context, cfg entity.RunConfig) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := uc.logger.With(
		zap.String("run_id", cfg.RunID.String()),
		zap.String("url", cfg.URL),
	)

	outDir, title, err := uc.resolveOutputDir(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	asset, err := uc.acquireVideo(ctx, cfg, outDir, title, log)
	if err != nil {
		return nil, err
	}

	exStart := time.Now()
	extraction, err := uc.extractor.ExtractRange(ctx, asset.Path, outDir, cfg.Range, cfg.FrameInterval)
	if err != nil {
		return nil, err
	}
	asset.Duration = extraction.VideoDuration
	log.Info("sampling finished",
		zap.Int("frame_count", len(extraction.Frames)),
		zap.Duration("took", time.Since(exStart)),
	)

	result := &RunResult{
		OutputDir: outDir,
		Asset:     asset,
		Frames:    extraction.Frames,
	}

	if err := uc.postProcess(ctx, cfg, result, log); err != nil {
		return nil, err
	}
	return result, nil
}

// resolveOutputDir names the output directory after the sanitized video
// title when available, unless an explicit directory was configured.
// Title lookup failure is non-fatal.
func (uc *ExtractFramesUseCase) resolveOutputDir(ctx context.Context, cfg entity.RunConfig, log *zap.Logger) (string, string, error) {
	title, err := uc.fetcher.ResolveTitle(ctx, cfg.URL)
	if err != nil {
		log.Warn("could not resolve video title, using default output dir", zap.Error(err))
		title = ""
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		if s := entity.SanitizeTitle(title); s != "" {
			outDir = s
		} else {
			outDir = entity.DefaultOutputDir
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", "", fmt.Errorf("create output dir %s: %w", outDir, err)
	}
	log.Info("output directory ready", zap.String("dir", outDir), zap.String("title", title))
	return outDir, title, nil
}

func (uc *ExtractFramesUseCase) acquireVideo(ctx context.Context, cfg entity.RunConfig, outDir, title string, log *zap.Logger) (entity.VideoAsset, error) {
	videoPath := filepath.Join(outDir, cfg.RunID.String()+".mp4")

	dlStart := time.Now()
	if err := uc.fetcher.Download(ctx, cfg.URL, videoPath); err != nil {
		return entity.VideoAsset{}, err
	}
	log.Info("video acquired",
		zap.String("path", videoPath),
		zap.Duration("took", time.Since(dlStart)),
	)

	return entity.VideoAsset{Path: videoPath, Title: title}, nil
}

// postProcess runs the optional stages in fixed order: gif, zip, video
// removal, metadata. Removal failure is the only non-fatal error.
func (uc *ExtractFramesUseCase) postProcess(ctx context.Context, cfg entity.RunConfig, result *RunResult, log *zap.Logger) error {
	paths := framePaths(result.Frames)

	if cfg.GenerateGIF {
		gifPath := filepath.Join(result.OutputDir, "frames.gif")
		if err := uc.animator.Encode(ctx, paths, gifPath, cfg.GIFFrameDuration); err != nil {
			return fmt.Errorf("generate gif: %w", err)
		}
		result.GIFPath = gifPath
	}

	if cfg.ZipFrames {
		zipPath := filepath.Join(result.OutputDir, "frames.zip")
		if err := uc.archiver.CreateZip(ctx, paths, zipPath); err != nil {
			return fmt.Errorf("zip frames: %w", err)
		}
		result.ZipPath = zipPath
		log.Info("frames archived", zap.String("path", zipPath))
	}

	if cfg.RemoveVideo {
		if err := os.Remove(result.Asset.Path); err != nil {
			log.Warn("failed to remove downloaded video", zap.String("path", result.Asset.Path), zap.Error(err))
		} else {
			result.Asset.Removed = true
			log.Info("downloaded video removed", zap.String("path", result.Asset.Path))
		}
	}

	if cfg.SaveMeta {
		metaPath, err := uc.writeMeta(cfg, result)
		if err != nil {
			return fmt.Errorf("save meta: %w", err)
		}
		result.MetaPath = metaPath
		log.Info("meta file saved", zap.String("path", metaPath))
	}

	return nil
}

func (uc *ExtractFramesUseCase) writeMeta(cfg entity.RunConfig, result *RunResult) (string, error) {
	meta := entity.RunMeta{
		RunID:           cfg.RunID.String(),
		URL:             cfg.URL,
		StartTime:       cfg.Range.StartRaw,
		EndTime:         cfg.Range.EndRaw,
		FrameInterval:   cfg.FrameInterval,
		FrameCount:      len(result.Frames),
		Title:           result.Asset.Title,
		DurationSeconds: result.Asset.Duration,
		CreatedAt:       time.Now().UTC(),
	}

	data, err := json.MarshalIndent(meta, "", "    ")
	if err != nil {
		return "", err
	}

	metaPath := filepath.Join(result.OutputDir, "meta.json")
	if err := os.WriteFile(metaPath, data, 0644); err != nil {
		return "", err
	}
	return metaPath, nil
}

func framePaths(frames []entity.FrameRecord) []string {
	paths := make([]string, len(frames))
	for i, f := range frames {
		paths[i] = f.Path
	}
	return paths
}
