package download

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"go.uber.org/zap"
)

var youtubeIDRe = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube|youtu|youtube-nocookie)\.(?:com|be)/(?:watch\?v=|embed/|v/|.+\?v=|shorts/)?([^&=%\?]{11})`)

// youtubeID extracts the 11-character video ID from a YouTube URL, or
// returns "" when the URL is not a YouTube link.
func youtubeID(rawURL string) string {
	m := youtubeIDRe.FindStringSubmatch(rawURL)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

// ResolveTitle retrieves a human title for the video without downloading
// it. YouTube links go through the oEmbed endpoint; everything else falls
// back to the server's Content-Disposition file name, then the URL's.
func (d *Downloader) ResolveTitle(ctx context.Context, rawURL string) (string, error) {
	if id := youtubeID(rawURL); id != "" {
		title, err := d.fetchOembedTitle(ctx, id)
		if err == nil && title != "" {
			return title, nil
		}
		d.logger.Debug("oEmbed title lookup failed, falling back to url name", zap.Error(err))
	}
	return filenameStem(rawURL, d.probeDisposition(ctx, rawURL)), nil
}

// probeDisposition asks the server for the Content-Disposition header with
// a HEAD request. Any failure just means no header.
func (d *Downloader) probeDisposition(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return ""
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Debug("content-disposition probe failed", zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ""
	}
	return resp.Header.Get("Content-Disposition")
}

func (d *Downloader) fetchOembedTitle(ctx context.Context, videoID string) (string, error) {
	oembedURL := fmt.Sprintf("https://www.youtube.com/oembed?url=https://www.youtube.com/watch?v=%s&format=json", videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oembedURL, nil)
	if err != nil {
		return "", err
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			d.logger.Warn("failed to close oEmbed response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oEmbed status %d", resp.StatusCode)
	}

	var data struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	return data.Title, nil
}
