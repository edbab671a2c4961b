package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestEnsureCleanDir(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "frames")

		if err := EnsureCleanDir(dir, logger); err != nil {
			t.Fatalf("EnsureCleanDir() error = %v", err)
		}

		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory at %s", dir)
		}
	})

	t.Run("removes stale files and subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "frame_0000001.jpg"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Join(dir, "nested", "deep"), 0755); err != nil {
			t.Fatal(err)
		}

		if err := EnsureCleanDir(dir, logger); err != nil {
			t.Fatalf("EnsureCleanDir() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty directory, found %d entries", len(entries))
		}
	})
}

func TestCheckerExists(t *testing.T) {
	checker := NewChecker()

	path := filepath.Join(t.TempDir(), "video.mp4")
	if checker.Exists(path) {
		t.Error("Exists() = true for missing file")
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !checker.Exists(path) {
		t.Error("Exists() = false for existing file")
	}
}
