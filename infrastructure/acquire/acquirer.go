package acquire

import (
	"context"
	"fmt"

	"cradlewatch/domain/source"

	"github.com/rs/zerolog"
)

// Acquirer resolves a video source descriptor into a local file,
// delegating downloads to the platform and generic downloaders.
type Acquirer struct {
	platform *PlatformDownloader
	generic  *HTTPDownloader
	logger   zerolog.Logger
}

// New creates an Acquirer
func New(platform *PlatformDownloader, generic *HTTPDownloader, logger zerolog.Logger) *Acquirer {
	return &Acquirer{
		platform: platform,
		generic:  generic,
		logger:   logger,
	}
}

// Acquire implements source.Acquirer
func (a *Acquirer) Acquire(ctx context.Context, rawSource string, hints source.CredentialHints) (source.Acquired, error) {
	switch source.Classify(rawSource) {
	case source.KindPlatformHosted:
		a.logger.Info().Str("url", rawSource).Msg("downloading platform-hosted video")
		localPath, tempDir, err := a.platform.Download(ctx, rawSource, hints)
		if err != nil {
			return source.Acquired{}, fmt.Errorf("platform download of %s failed: %w", rawSource, err)
		}
		return source.Acquired{LocalPath: localPath, TempDir: tempDir}, nil

	case source.KindRemoteFile:
		a.logger.Info().Str("url", rawSource).Msg("downloading remote video")
		localPath, tempDir, err := a.generic.Download(ctx, rawSource)
		if err != nil {
			return source.Acquired{}, fmt.Errorf("download of %s failed: %w", rawSource, err)
		}
		return source.Acquired{LocalPath: localPath, TempDir: tempDir}, nil

	default:
		// Local path, used verbatim; a missing file surfaces at open time
		return source.Acquired{LocalPath: rawSource}, nil
	}
}

// Ensure Acquirer implements source.Acquirer
var _ source.Acquirer = (*Acquirer)(nil)
