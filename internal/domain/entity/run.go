package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultOutputDir is used when no title can be resolved and no explicit
// output directory was given.
const DefaultOutputDir = "frames"

// RunConfig is the immutable configuration of one extraction run, built
// once from the command line and threaded through every stage.
type RunConfig struct {
	RunID uuid.UUID
	URL   string
	Range TimeRange

	// FrameInterval is the stride in decoded frames between extracted
	// frames. 1 keeps every decoded frame.
	FrameInterval int
	ImageFormat   string

	RemoveVideo bool
	GenerateGIF bool
	// GIFFrameDuration is the display duration of each GIF frame.
	GIFFrameDuration time.Duration
	ZipFrames        bool
	SaveMeta         bool

	// OutputDir, when set, overrides title-based directory naming.
	OutputDir string
}

// NewRunConfig stamps a fresh run ID onto the given configuration.
func NewRunConfig(cfg RunConfig) RunConfig {
	cfg.RunID = uuid.New()
	return cfg
}

// Validate checks everything that can be checked before any network or
// file activity happens.
func (c RunConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: url is required", ErrValidation)
	}
	if c.Range.End <= c.Range.Start {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	if c.FrameInterval < 1 {
		return fmt.Errorf("%w: frame interval must be a positive integer, got %d", ErrValidation, c.FrameInterval)
	}
	if c.ImageFormat != "jpg" && c.ImageFormat != "png" {
		return fmt.Errorf("%w: unsupported image format %q", ErrValidation, c.ImageFormat)
	}
	if c.GenerateGIF && c.GIFFrameDuration < time.Millisecond {
		return fmt.Errorf("%w: gif duration must be at least 1ms", ErrValidation)
	}
	return nil
}

// VideoAsset is the downloaded video file plus whatever metadata could be
// retrieved alongside it.
type VideoAsset struct {
	Path  string
	Title string
	// Duration is the probed length of the whole video in seconds, 0 if unknown.
	Duration float64
	Removed  bool
}

// FrameRecord is one extracted frame: its position in the selection, its
// timestamp within the source video, and the image file written for it.
type FrameRecord struct {
	Index     int
	Timestamp float64
	Path      string
}

// RunMeta is the flat record written to meta.json when --save_meta is set.
type RunMeta struct {
	RunID           string    `json:"run_id"`
	URL             string    `json:"url"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	FrameInterval   int       `json:"frame_interval"`
	FrameCount      int       `json:"frame_count"`
	Title           string    `json:"title,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
