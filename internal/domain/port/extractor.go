package port

import (
	"context"

	"github.com/hvpkod/frame-dump/internal/domain/entity"
)

type FrameExtractionResult struct {
	Frames []entity.FrameRecord
	// FPS is the source frame rate used to derive frame timestamps.
	FPS float64
	// VideoDuration is the probed length of the whole file in seconds, 0 if unknown.
	VideoDuration float64
}

// FrameExtractor decodes the frames of rng from the video file and writes
// every interval-th one as an image into outputDir.
type FrameExtractor interface {
	ExtractRange(ctx context.Context, videoPath, outputDir string, rng entity.TimeRange, interval int) (*FrameExtractionResult, error)
}
