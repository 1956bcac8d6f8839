package port

import "context"

// VideoFetcher acquires the remote video.
type VideoFetcher interface {
	// ResolveTitle returns the video's title if it can be retrieved
	// without downloading. Failures are non-fatal to the pipeline.
	ResolveTitle(ctx context.Context, rawURL string) (string, error)

	// Download fetches the video body to destPath. One attempt, no retry.
	Download(ctx context.Context, rawURL, destPath string) error
}
