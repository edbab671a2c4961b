package sampling

// Window restricts which portion of a video contributes frames,
// covering [StartSec, EndSec). A nil EndSec means "to the end of the
// video".
type Window struct {
	StartSec float64
	EndSec   *float64
}

// FullVideo returns an unbounded window starting at zero
func FullVideo() Window {
	return Window{}
}

// Bounded returns a window covering [startSec, endSec)
func Bounded(startSec, endSec float64) Window {
	return Window{StartSec: startSec, EndSec: &endSec}
}

// Normalize returns a valid window. A negative start is clamped to
// zero and an end at or before the start collapses to unbounded-end.
// The second return reports whether the end bound was dropped, so the
// caller can warn; an invalid window is never an error.
func (w Window) Normalize() (Window, bool) {
	out := w
	if out.StartSec < 0 {
		out.StartSec = 0
	}
	if out.EndSec != nil && *out.EndSec <= out.StartSec {
		out.EndSec = nil
		return out, true
	}
	return out, false
}

// Bounded reports whether the window has an end bound
func (w Window) Bounded() bool {
	return w.EndSec != nil
}
