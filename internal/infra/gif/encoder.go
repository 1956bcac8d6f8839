package gif

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	stdgif "image/gif"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Encoder assembles frame images into an animated GIF.
type Encoder struct {
	logger *zap.Logger
}

func NewEncoder(logger *zap.Logger) *Encoder {
	return &Encoder{logger: logger}
}

// Encode reads framePaths in order and writes an animated GIF to
// outputPath. Every frame is displayed for frameDuration. GIF delays have
// 10ms resolution; anything below is clamped to one tick.
func (e *Encoder) Encode(ctx context.Context, framePaths []string, outputPath string, frameDuration time.Duration) error {
	if len(framePaths) == 0 {
		return fmt.Errorf("no frames to encode")
	}

	delay := int(frameDuration / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}

	anim := &stdgif.GIF{LoopCount: 0}
	for _, p := range framePaths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		img, err := imaging.Open(p)
		if err != nil {
			return fmt.Errorf("open frame %s: %w", p, err)
		}

		bounds := img.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create gif file: %w", err)
	}
	defer out.Close()

	if err := stdgif.EncodeAll(out, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}

	e.logger.Info("gif created",
		zap.String("path", outputPath),
		zap.Int("frames", len(anim.Image)),
		zap.Duration("frame_duration", frameDuration),
	)
	return nil
}
