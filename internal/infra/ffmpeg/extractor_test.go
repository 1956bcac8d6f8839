package ffmpeg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer rational", input: "30/1", want: 30},
		{name: "ntsc rational", input: "30000/1001", want: 29.97002997002997},
		{name: "plain float", input: "25", want: 25},
		{name: "fractional float", input: "23.976", want: 23.976},
		{name: "zero denominator", input: "30/0", wantErr: true},
		{name: "zero rate", input: "0/1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc/def", wantErr: true},
		{name: "negative", input: "-25", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFrameRate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSortFramePaths(t *testing.T) {
	paths := []string{
		"out/frame_10000.jpg",
		"out/frame_0002.jpg",
		"out/frame_11000.jpg",
		"out/frame_0001.jpg",
		"out/frame_9999.jpg",
	}
	sortFramePaths(paths)
	assert.Equal(t, []string{
		"out/frame_0001.jpg",
		"out/frame_0002.jpg",
		"out/frame_9999.jpg",
		"out/frame_10000.jpg",
		"out/frame_11000.jpg",
	}, paths)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.000", formatSeconds(0))
	assert.Equal(t, "90.000", formatSeconds(90))
	assert.Equal(t, "5.500", formatSeconds(5.5))
	assert.Equal(t, "7200.125", formatSeconds(7200.125))
}

func TestClearStaleFrames(t *testing.T) {
	dir := t.TempDir()
	stale := []string{"frame_0001.jpg", "frame_0002.jpg"}
	for _, name := range stale {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	// Different format and unrelated files must survive.
	keep := []string{"frame_0001.png", "meta.json", "video.mp4"}
	for _, name := range keep {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	e := NewExtractor("jpg", zap.NewNop())
	require.NoError(t, e.clearStaleFrames(dir))

	for _, name := range stale {
		assert.NoFileExists(t, filepath.Join(dir, name))
	}
	for _, name := range keep {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}
