package port

import (
	"context"
	"time"
)

// Animator assembles still frame images into a single animated image.
type Animator interface {
	// Encode writes an animation of framePaths (in order) to outputPath,
	// displaying each frame for frameDuration.
	Encode(ctx context.Context, framePaths []string, outputPath string, frameDuration time.Duration) error
}
