package download

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"context"

	"go.uber.org/zap"

	"github.com/hvpkod/frame-dump/internal/domain/entity"
)

// Doer is the slice of http.Client the downloader needs. The production
// wiring passes the tls-client wrapper; tests pass a plain *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Downloader struct {
	client    Doer
	userAgent string
	logger    *zap.Logger
}

func NewDownloader(client Doer, userAgent string, logger *zap.Logger) *Downloader {
	return &Downloader{client: client, userAgent: userAgent, logger: logger}
}

// Download fetches rawURL to destPath in a single attempt. Any transport
// failure or non-2xx status is a download error.
func (d *Downloader) Download(ctx context.Context, rawURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: invalid url %q: %v", entity.ErrDownload, rawURL, err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetch %s: %v", entity.ErrDownload, rawURL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			d.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: fetch %s: http status %d", entity.ErrDownload, rawURL, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", entity.ErrDownload, destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			d.logger.Warn("failed to close video file", zap.Error(cerr))
		}
	}()

	src := io.Reader(resp.Body)
	if d.logger.Core().Enabled(zap.DebugLevel) {
		src = &progressReader{
			r:      resp.Body,
			total:  resp.ContentLength,
			logger: d.logger,
		}
	}

	written, err := io.Copy(out, src)
	if err != nil {
		return fmt.Errorf("%w: transfer %s: %v", entity.ErrDownload, rawURL, err)
	}

	d.logger.Info("video downloaded",
		zap.String("url", rawURL),
		zap.String("path", destPath),
		zap.Int64("bytes", written),
	)
	return nil
}

// progressReader logs transfer progress at most every 2 seconds.
type progressReader struct {
	r       io.Reader
	total   int64
	read    int64
	lastLog time.Time
	logger  *zap.Logger
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if time.Since(p.lastLog) > 2*time.Second {
		p.lastLog = time.Now()
		if p.total > 0 {
			p.logger.Debug("downloading",
				zap.Int64("bytes", p.read),
				zap.Int64("total", p.total),
				zap.Float64("percent", float64(p.read)/float64(p.total)*100),
			)
		} else {
			p.logger.Debug("downloading", zap.Int64("bytes", p.read))
		}
	}
	return n, err
}

// filenameStem derives a name from the URL path or a Content-Disposition
// header, without its extension. Used as a title of last resort.
func filenameStem(rawURL, contentDisposition string) string {
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			if fn := params["filename"]; fn != "" {
				return strings.TrimSuffix(fn, path.Ext(fn))
			}
		}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
