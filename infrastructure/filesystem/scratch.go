package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// EnsureCleanDir creates the directory if needed and removes every
// entry already in it, so a run never sees files left over from a
// previous one. Individual deletion failures are logged and skipped
// rather than aborting the whole clear.
func EnsureCleanDir(path string, logger zerolog.Logger) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(path, entry.Name())
		var rmErr error
		if entry.IsDir() {
			rmErr = os.RemoveAll(entryPath)
		} else {
			rmErr = os.Remove(entryPath)
		}
		if rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", entryPath).Msg("failed to delete stale entry")
		}
	}

	return nil
}
