package analysis

import (
	"context"
	"strings"

	"cradlewatch/domain/sampling"
	"cradlewatch/domain/transcript"
)

// DefaultMaxFrames caps how many frames a request carries to keep the
// payload bounded.
const DefaultMaxFrames = 12

// Request is the assembled input for one behavioral assessment
type Request struct {
	Prompt     string
	Transcript string
	Cues       []transcript.CueToken
	Frames     []sampling.Frame
}

// NewRequest assembles an analysis request, truncating frames to at
// most maxFrames. Truncation keeps the first N in ascending index
// order; it never samples or reorders. A maxFrames of zero or less
// uses DefaultMaxFrames.
func NewRequest(prompt string, result transcript.Result, frames []sampling.Frame, maxFrames int) Request {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	if len(frames) > maxFrames {
		frames = frames[:maxFrames]
	}
	return Request{
		Prompt:     prompt,
		Transcript: result.Text,
		Cues:       result.Cues,
		Frames:     frames,
	}
}

// CueSummary renders the detected cues as one sentence for the model
func (r Request) CueSummary() string {
	if len(r.Cues) == 0 {
		return "No specific Dunstan baby cry cues detected in audio."
	}
	names := make([]string, len(r.Cues))
	for i, cue := range r.Cues {
		names[i] = string(cue)
	}
	return "Baby cry cues detected in audio: " + strings.Join(names, ", ")
}

// TranscriptNote frames the transcript text for the model
func (r Request) TranscriptNote() string {
	return "Video audio transcript (may be noisy/partial): " + r.Transcript
}

// Analyzer submits an assembled request to a vision-language model and
// returns the human-readable assessment.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (string, error)
}
