package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cradlewatch/domain/source"
	"cradlewatch/infrastructure/command"
)

// PlatformDownloader fetches platform-hosted videos with yt-dlp,
// preferring a merged best-video+best-audio mp4.
type PlatformDownloader struct {
	ytdlpPath string
	runner    command.Runner
}

// PlatformDownloaderOption is a functional option for configuring PlatformDownloader
type PlatformDownloaderOption func(*PlatformDownloader)

// WithYtDlpPath sets a custom yt-dlp executable path
func WithYtDlpPath(path string) PlatformDownloaderOption {
	return func(d *PlatformDownloader) {
		d.ytdlpPath = path
	}
}

// WithPlatformCommandRunner sets a custom command runner (for testing)
func WithPlatformCommandRunner(runner command.Runner) PlatformDownloaderOption {
	return func(d *PlatformDownloader) {
		d.runner = runner
	}
}

// NewPlatformDownloader creates a new yt-dlp based downloader
func NewPlatformDownloader(opts ...PlatformDownloaderOption) *PlatformDownloader {
	d := &PlatformDownloader{
		ytdlpPath: "yt-dlp",
		runner:    &command.ExecRunner{},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Download fetches the video at url into a new temp directory and
// returns the local file path plus the temp directory the caller must
// remove. On failure the temp directory is removed before the error
// propagates.
func (d *PlatformDownloader) Download(ctx context.Context, url string, hints source.CredentialHints) (string, string, error) {
	tempDir, err := os.MkdirTemp("", "cradlewatch_platform_")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	outTemplate := filepath.Join(tempDir, "video.%(ext)s")
	args := []string{
		"--quiet",
		"--no-playlist",
		"-f", "bestvideo+bestaudio/best",
		"--merge-output-format", "mp4",
		"-o", outTemplate,
	}
	if hints.CookieFile != "" {
		args = append(args, "--cookies", hints.CookieFile)
	}
	if hints.Browser != "" {
		spec := hints.Browser
		if hints.BrowserProfile != "" {
			spec += ":" + hints.BrowserProfile
		}
		args = append(args, "--cookies-from-browser", spec)
	}
	args = append(args, url)

	if err := d.runner.Run(ctx, d.ytdlpPath, args...); err != nil {
		os.RemoveAll(tempDir)
		return "", "", fmt.Errorf("yt-dlp download failed: %w", err)
	}

	localPath, err := d.locateOutput(tempDir)
	if err != nil {
		os.RemoveAll(tempDir)
		return "", "", err
	}

	return localPath, tempDir, nil
}

// locateOutput finds the downloaded file. When streams were merged the
// file carries the canonical mp4 extension; otherwise take whatever
// single file yt-dlp wrote.
func (d *PlatformDownloader) locateOutput(tempDir string) (string, error) {
	merged := filepath.Join(tempDir, "video.mp4")
	if _, err := os.Stat(merged); err == nil {
		return merged, nil
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return "", fmt.Errorf("failed to read download directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			return filepath.Join(tempDir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("yt-dlp reported success but produced no file")
}

// VerifyInstalled checks that yt-dlp is available
func (d *PlatformDownloader) VerifyInstalled(ctx context.Context) error {
	_, err := d.runner.Output(ctx, d.ytdlpPath, "--version")
	if err != nil {
		return fmt.Errorf("yt-dlp not found or not executable: %w", err)
	}
	return nil
}
