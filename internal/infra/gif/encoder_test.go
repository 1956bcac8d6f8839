package gif

import (
	"context"
	"image"
	"image/color"
	stdgif "image/gif"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTestFrame(t *testing.T, dir, name string, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}

	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
	return p
}

func TestEncode(t *testing.T) {
	dir := t.TempDir()
	frames := []string{
		writeTestFrame(t, dir, "frame_0001.jpg", color.RGBA{R: 255, A: 255}),
		writeTestFrame(t, dir, "frame_0002.jpg", color.RGBA{G: 255, A: 255}),
		writeTestFrame(t, dir, "frame_0003.jpg", color.RGBA{B: 255, A: 255}),
	}

	outPath := filepath.Join(dir, "frames.gif")
	e := NewEncoder(zap.NewNop())
	require.NoError(t, e.Encode(context.Background(), frames, outPath, 100*time.Millisecond))

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := stdgif.DecodeAll(f)
	require.NoError(t, err)
	require.Len(t, decoded.Image, 3)
	assert.Equal(t, 0, decoded.LoopCount)
	for _, d := range decoded.Delay {
		// 100ms is 10 ticks of the GIF's 10ms clock.
		assert.Equal(t, 10, d)
	}
	assert.Equal(t, 16, decoded.Image[0].Bounds().Dx())
}

func TestEncodeClampsTinyDuration(t *testing.T) {
	dir := t.TempDir()
	frames := []string{writeTestFrame(t, dir, "frame_0001.jpg", color.RGBA{R: 255, A: 255})}

	outPath := filepath.Join(dir, "frames.gif")
	e := NewEncoder(zap.NewNop())
	require.NoError(t, e.Encode(context.Background(), frames, outPath, time.Millisecond))

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := stdgif.DecodeAll(f)
	require.NoError(t, err)
	require.Len(t, decoded.Delay, 1)
	assert.Equal(t, 1, decoded.Delay[0])
}

func TestEncodeNoFrames(t *testing.T) {
	e := NewEncoder(zap.NewNop())
	err := e.Encode(context.Background(), nil, filepath.Join(t.TempDir(), "frames.gif"), 100*time.Millisecond)
	assert.Error(t, err)
}

func TestEncodeMissingFrame(t *testing.T) {
	e := NewEncoder(zap.NewNop())
	err := e.Encode(context.Background(), []string{filepath.Join(t.TempDir(), "nope.jpg")}, filepath.Join(t.TempDir(), "frames.gif"), 100*time.Millisecond)
	assert.Error(t, err)
}

func TestEncodeCancelledContext(t *testing.T) {
	dir := t.TempDir()
	frames := []string{writeTestFrame(t, dir, "frame_0001.jpg", color.RGBA{R: 255, A: 255})}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEncoder(zap.NewNop())
	err := e.Encode(ctx, frames, filepath.Join(dir, "frames.gif"), 100*time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}
