package pipeline

import (
	"os"

	"github.com/rs/zerolog"
)

type resourceKind int

const (
	resourceFile resourceKind = iota
	resourceDir
)

type tempResource struct {
	path string
	kind resourceKind
}

// tracker is the single ordered list of temporary resources a run
// creates. Entries are appended as soon as a resource exists, before
// any operation that might fail, so teardown sees them no matter where
// a later stage aborts.
type tracker struct {
	resources []tempResource
	logger    zerolog.Logger
}

func newTracker(logger zerolog.Logger) *tracker {
	return &tracker{logger: logger}
}

func (t *tracker) addFile(path string) {
	if path != "" {
		t.resources = append(t.resources, tempResource{path: path, kind: resourceFile})
	}
}

func (t *tracker) addDir(path string) {
	if path != "" {
		t.resources = append(t.resources, tempResource{path: path, kind: resourceDir})
	}
}

// release removes every tracked resource. Deletion failures are logged
// and swallowed; they never mask the run's primary outcome.
func (t *tracker) release() {
	for _, res := range t.resources {
		var err error
		switch res.kind {
		case resourceDir:
			err = os.RemoveAll(res.path)
		default:
			err = os.Remove(res.path)
			if os.IsNotExist(err) {
				err = nil
			}
		}
		if err != nil {
			t.logger.Warn().Err(err).Str("path", res.path).Msg("failed to remove temporary resource")
		}
	}
	t.resources = nil
}
