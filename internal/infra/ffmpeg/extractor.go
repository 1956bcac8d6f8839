package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	ffmpeg_go "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/hvpkod/frame-dump/internal/domain/entity"
	"github.com/hvpkod/frame-dump/internal/domain/port"
)

type Extractor struct {
	format string
	logger *zap.Logger
}

func NewExtractor(format string, logger *zap.Logger) *Extractor {
	return &Extractor{format: format, logger: logger}
}

// ExtractRange decodes rng from the video and writes every interval-th
// frame as frame_NNNN.<format> into outputDir. Frame timestamps are
// derived from the probed source frame rate.
func (e *Extractor) ExtractRange(ctx context.Context, videoPath, outputDir string, rng entity.TimeRange, interval int) (*port.FrameExtractionResult, error) {
	fps, err := e.probeFrameRate(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: probe frame rate of %s: %v", entity.ErrDecode, videoPath, err)
	}

	duration, err := e.probeDuration(ctx, videoPath)
	if err != nil {
		e.logger.Warn("could not probe video duration", zap.Error(err))
	}

	if err := e.clearStaleFrames(outputDir); err != nil {
		return nil, fmt.Errorf("clear stale frames: %w", err)
	}

	pattern := filepath.Join(outputDir, "frame_%04d."+e.format)
	sel := fmt.Sprintf("not(mod(n\\,%d))", interval)

	err = ffmpeg_go.Input(videoPath, ffmpeg_go.KwArgs{
		"ss": formatSeconds(rng.Start),
		"t":  formatSeconds(rng.Length()),
	}).
		Filter("select", ffmpeg_go.Args{sel}).
		Output(pattern, ffmpeg_go.KwArgs{"vsync": "vfr", "qscale:v": 2}).
		OverWriteOutput().
		Run()
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg on %s: %v", entity.ErrDecode, videoPath, err)
	}

	paths, err := filepath.Glob(filepath.Join(outputDir, "frame_*."+e.format))
	if err != nil {
		return nil, fmt.Errorf("glob frames: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no frames decoded in range %s-%s", entity.ErrDecode, rng.StartRaw, rng.EndRaw)
	}
	sortFramePaths(paths)

	frames := make([]entity.FrameRecord, len(paths))
	for i, p := range paths {
		frames[i] = entity.FrameRecord{
			Index:     i,
			Timestamp: rng.Start + float64(i*interval)/fps,
			Path:      p,
		}
	}

	e.logger.Info("frames extracted",
		zap.Int("count", len(frames)),
		zap.Float64("fps", fps),
		zap.Int("interval", interval),
	)

	return &port.FrameExtractionResult{
		Frames:        frames,
		FPS:           fps,
		VideoDuration: duration,
	}, nil
}

// clearStaleFrames removes frame images left behind by a previous run in
// a reused output directory, so the glob below sees only this run's output.
func (e *Extractor) clearStaleFrames(outputDir string) error {
	stale, err := filepath.Glob(filepath.Join(outputDir, "frame_*."+e.format))
	if err != nil {
		return err
	}
	for _, p := range stale {
		if err := os.Remove(p); err != nil {
			return err
		}
	}
	if len(stale) > 0 {
		e.logger.Debug("removed stale frames from previous run", zap.Int("count", len(stale)))
	}
	return nil
}

func (e *Extractor) probeFrameRate(ctx context.Context, videoPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseFrameRate(strings.TrimSpace(string(output)))
}

func (e *Extractor) probeDuration(ctx context.Context, videoPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	return duration, nil
}

// parseFrameRate parses ffprobe's r_frame_rate, a rational like "30000/1001".
func parseFrameRate(s string) (float64, error) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("invalid frame rate %q", s)
		}
		return v, nil
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q", s)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 || n <= 0 {
		return 0, fmt.Errorf("invalid frame rate %q", s)
	}
	return n / d, nil
}

// sortFramePaths orders frame files by their numeric index. ffmpeg's
// %04d pattern grows past four digits, so lexical order breaks after
// frame 9999.
func sortFramePaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return frameIndex(paths[i]) < frameIndex(paths[j])
	})
}

func frameIndex(p string) int {
	base := filepath.Base(p)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	n, err := strconv.Atoi(strings.TrimPrefix(base, "frame_"))
	if err != nil {
		return 0
	}
	return n
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
