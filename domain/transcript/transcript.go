package transcript

import (
	"context"
	"regexp"
)

// CueToken is one of the Dunstan infant-cue markers transcription is
// primed to recognize.
type CueToken string

const (
	CueNeh  CueToken = "NEH"  // hunger
	CueOwh  CueToken = "OWH"  // sleepy
	CueHeh  CueToken = "HEH"  // discomfort
	CueEair CueToken = "EAIR" // lower gas
	CueEh   CueToken = "EH"   // burp
)

// Vocabulary is the closed set of cue tokens, in canonical order
var Vocabulary = []CueToken{CueNeh, CueOwh, CueHeh, CueEair, CueEh}

// NoAudioText is the sentinel transcript for a video with no audio track
const NoAudioText = "There is no audio for this video."

// TranscriptionPrompt primes the speech model to transcribe cue sounds verbatim
const TranscriptionPrompt = "This audio features a baby. When you hear Dunstan baby language sounds like " +
	"NEH, OWH, HEH, EAIR, or EH, transcribe them verbatim in uppercase (e.g., NEH)."

// Result is a transcript with the cue tokens detected in it
type Result struct {
	Text string
	Cues []CueToken
}

// NoAudio returns the fixed result for a video without an audio track
func NoAudio() Result {
	return Result{Text: NoAudioText}
}

var cuePatterns = func() map[CueToken]*regexp.Regexp {
	patterns := make(map[CueToken]*regexp.Regexp, len(Vocabulary))
	for _, cue := range Vocabulary {
		patterns[cue] = regexp.MustCompile(`(?i)\b` + string(cue) + `\b`)
	}
	return patterns
}()

// DetectCues scans text for each vocabulary token with case-insensitive
// whole-word matching. Each token appears at most once in the result,
// in vocabulary order; repetition and position in the text are not
// retained.
func DetectCues(text string) []CueToken {
	var found []CueToken
	for _, cue := range Vocabulary {
		if cuePatterns[cue].MatchString(text) {
			found = append(found, cue)
		}
	}
	return found
}

// Transcriber converts an extracted audio file into text
type Transcriber interface {
	// Transcribe submits the audio file at audioPath and returns the
	// transcript text.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
