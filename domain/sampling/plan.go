package sampling

import "math"

// DefaultFPS is assumed when the container reports no usable frame rate
const DefaultFPS = 30.0

// Plan holds the arithmetic of a fixed-interval sampling schedule so it
// can be exercised without a decoder. Frames are read sequentially from
// the window's start; every FrameSkip-th read (counted from the loop's
// own counter, not the absolute frame index) is persisted.
type Plan struct {
	FPS       float64
	FrameSkip int
	window    Window
}

// NewPlan derives a sampling schedule from the native frame rate, the
// requested sampling interval in seconds, and a normalized window.
func NewPlan(fps, intervalSec float64, window Window) Plan {
	if fps <= 0 {
		fps = DefaultFPS
	}
	skip := int(math.Round(fps * intervalSec))
	if skip < 1 {
		skip = 1
	}
	return Plan{FPS: fps, FrameSkip: skip, window: window}
}

// StartFrame is the native frame index reading begins at when the
// stream cannot report its own position after a seek.
func (p Plan) StartFrame() int {
	return int(p.window.StartSec * p.FPS)
}

// Done reports whether the absolute frame index has reached the
// window's end. The end bound is exclusive: a frame whose timestamp
// equals EndSec is not read.
func (p Plan) Done(absFrame int) bool {
	if p.window.EndSec == nil {
		return false
	}
	return float64(absFrame)/p.FPS >= *p.window.EndSec
}

// Keep reports whether the loopIdx-th read frame should be persisted
func (p Plan) Keep(loopIdx int) bool {
	return loopIdx%p.FrameSkip == 0
}
