package source

import (
	"context"
	"net/url"
	"strings"
)

// Kind classifies where a video source comes from
type Kind string

const (
	// KindLocal is a filesystem path (anything without an http/https scheme)
	KindLocal Kind = "local"

	// KindRemoteFile is a direct http/https URL to a video file
	KindRemoteFile Kind = "remote_file"

	// KindPlatformHosted is a URL on a known video-hosting platform
	KindPlatformHosted Kind = "platform_hosted"
)

// platformHosts are host patterns that identify platform-hosted videos
var platformHosts = []string{"youtube.com", "youtu.be"}

// Classify determines the kind of a video source string.
// A string only counts as a URL when it parses with an http or https
// scheme; everything else is treated as a local path verbatim, with no
// existence check (a missing file surfaces later at open time).
func Classify(source string) Kind {
	parsed, err := url.Parse(source)
	if err != nil {
		return KindLocal
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return KindLocal
	}

	host := strings.ToLower(parsed.Host)
	for _, pattern := range platformHosts {
		if strings.Contains(host, pattern) {
			return KindPlatformHosted
		}
	}
	return KindRemoteFile
}

// Acquired is the result of resolving a source to a local video file
type Acquired struct {
	// LocalPath is an existing, readable video file
	LocalPath string

	// TempDir is the directory acquisition created for a download, owned
	// by the caller for cleanup. Empty for an already-local source.
	TempDir string
}

// CredentialHints carries optional authentication hints for platform downloads
type CredentialHints struct {
	// CookieFile is a path to a cookies.txt file
	CookieFile string

	// Browser names a local browser to read cookies from
	Browser string

	// BrowserProfile optionally names the browser profile
	BrowserProfile string
}

// Acquirer resolves a video source string into a local file
type Acquirer interface {
	// Acquire resolves source to a local video file. When it downloads,
	// the returned Acquired.TempDir must be removed by the caller; on
	// failure no temp directory is left behind.
	Acquire(ctx context.Context, source string, hints CredentialHints) (Acquired, error)
}
