package sampling

import (
	"context"
	"fmt"
)

// Frame is one persisted sample. Index is the absolute native frame
// number, so ascending index order equals ascending timestamp order.
type Frame struct {
	Index int
	Path  string
}

// FrameFileName names a frame image by its absolute native index,
// zero-padded so lexical sort order equals numeric order.
func FrameFileName(index int) string {
	return fmt.Sprintf("frame_%07d.jpg", index)
}

// Result is the outcome of a sampling run. A video that cannot be
// opened yields Degraded with zero frames rather than an error; the
// pipeline continues with an empty frame set.
type Result struct {
	Frames   []Frame
	Degraded bool
}

// Sampler writes one image per sampled instant into a scratch
// directory that is cleared before each run.
type Sampler interface {
	Sample(ctx context.Context, videoPath string, intervalSec float64, window Window) (Result, error)
}
