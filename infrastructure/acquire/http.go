package acquire

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DefaultDownloadTimeout bounds a generic URL download
const DefaultDownloadTimeout = 120 * time.Second

// HTTPDownloader streams a direct video URL to a local file
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// HTTPDownloaderOption is a functional option for configuring HTTPDownloader
type HTTPDownloaderOption func(*HTTPDownloader)

// WithHTTPClient sets a custom http client (for testing)
func WithHTTPClient(client *http.Client) HTTPDownloaderOption {
	return func(d *HTTPDownloader) {
		d.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with downloads
func WithUserAgent(userAgent string) HTTPDownloaderOption {
	return func(d *HTTPDownloader) {
		d.userAgent = userAgent
	}
}

// WithTimeout sets the overall download timeout
func WithTimeout(timeout time.Duration) HTTPDownloaderOption {
	return func(d *HTTPDownloader) {
		d.timeout = timeout
	}
}

// NewHTTPDownloader creates a downloader with a bounded timeout. An
// explicit WithTimeout is applied after all options so it holds
// regardless of option order; otherwise a replaced client keeps its
// own timeout.
func NewHTTPDownloader(opts ...HTTPDownloaderOption) *HTTPDownloader {
	d := &HTTPDownloader{
		client:    &http.Client{Timeout: DefaultDownloadTimeout},
		userAgent: "Mozilla/5.0 cradlewatch/1.0",
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.timeout > 0 {
		d.client.Timeout = d.timeout
	}

	return d
}

// Download streams rawURL into a new temp directory and returns the
// local file path plus the temp directory the caller must remove. On
// failure the temp directory is removed before the error propagates.
func (d *HTTPDownloader) Download(ctx context.Context, rawURL string) (string, string, error) {
	tempDir, err := os.MkdirTemp("", "cradlewatch_remote_")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	localPath, err := d.download(ctx, rawURL, tempDir)
	if err != nil {
		os.RemoveAll(tempDir)
		return "", "", err
	}

	return localPath, tempDir, nil
}

func (d *HTTPDownloader) download(ctx context.Context, rawURL, tempDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid download URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download failed: unexpected status %s", resp.Status)
	}

	filename := InferFilename(rawURL, resp.Header.Get("Content-Type"))
	localPath := filepath.Join(tempDir, filename)

	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", localPath, err)
	}

	return localPath, nil
}

// InferFilename derives a local filename from the URL path component,
// falling back to an extension guessed from the Content-Type header,
// falling back to the default container extension.
func InferFilename(rawURL, contentType string) string {
	name := "remote_video"
	ext := ""

	if parsed, err := url.Parse(rawURL); err == nil {
		base := path.Base(strings.TrimRight(parsed.Path, "/"))
		if base != "." && base != "/" && base != "" {
			ext = path.Ext(base)
			if trimmed := strings.TrimSuffix(base, ext); trimmed != "" {
				name = trimmed
			}
		}
	}

	if ext == "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			ext = extensionFor(mediaType)
		}
	}
	if ext == "" {
		ext = ".mp4"
	}

	return name + ext
}

// extensionFor picks an extension for a media type. ExtensionsByType
// returns its matches sorted, which puts obscure registrations first
// ("video/mp4" lists ".f4v" before ".mp4"), so the extension matching
// the subtype wins when it is registered at all.
func extensionFor(mediaType string) string {
	matches, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(matches) == 0 {
		return ""
	}
	if _, subtype, ok := strings.Cut(mediaType, "/"); ok {
		canonical := "." + subtype
		for _, match := range matches {
			if match == canonical {
				return canonical
			}
		}
	}
	return matches[0]
}
