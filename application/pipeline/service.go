package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cradlewatch/domain/analysis"
	"cradlewatch/domain/sampling"
	"cradlewatch/domain/source"
	"cradlewatch/domain/transcript"

	"github.com/rs/zerolog"
)

// TranscriptService produces a cue-scanned transcript for a video
type TranscriptService interface {
	ExtractAndTranscribe(ctx context.Context, videoPath string) (transcript.Result, error)
}

// Service runs the complete assessment pipeline: acquire, sample,
// transcribe, infer, cleanup. Stages run strictly in order; every
// temporary resource is tracked the moment it exists and removed on
// every exit path.
type Service struct {
	acquirer    source.Acquirer
	sampler     sampling.Sampler
	transcripts TranscriptService
	analyzer    analysis.Analyzer
	frameDir    string
	intervalSec float64
	maxFrames   int
	output      io.Writer
	logger      zerolog.Logger
}

// NewService creates a pipeline service
func NewService(
	acquirer source.Acquirer,
	sampler sampling.Sampler,
	transcripts TranscriptService,
	analyzer analysis.Analyzer,
	frameDir string,
	intervalSec float64,
	maxFrames int,
	output io.Writer,
	logger zerolog.Logger,
) *Service {
	return &Service{
		acquirer:    acquirer,
		sampler:     sampler,
		transcripts: transcripts,
		analyzer:    analyzer,
		frameDir:    frameDir,
		intervalSec: intervalSec,
		maxFrames:   maxFrames,
		output:      output,
		logger:      logger,
	}
}

// Input contains the parameters for one pipeline run
type Input struct {
	Source string
	Window sampling.Window
	Hints  source.CredentialHints
}

// Run executes the pipeline and returns the assessment text. The
// assessment is also written to the output writer, which is the
// pipeline's externally observable channel.
func (s *Service) Run(ctx context.Context, input Input) (string, error) {
	track := newTracker(s.logger)
	defer track.release()

	fmt.Fprintf(s.output, "[1/4] Acquiring video...\n")
	acquired, err := s.acquirer.Acquire(ctx, input.Source, input.Hints)
	if err != nil {
		return "", fmt.Errorf("acquisition failed: %w", err)
	}
	track.addDir(acquired.TempDir)
	fmt.Fprintf(s.output, "      Using: %s\n\n", acquired.LocalPath)

	fmt.Fprintf(s.output, "[2/4] Sampling frames...\n")
	// Tracked before sampling so a partial frame set is still removed
	track.addDir(s.frameDir)
	sampled, err := s.sampler.Sample(ctx, acquired.LocalPath, s.intervalSec, input.Window)
	if err != nil {
		return "", fmt.Errorf("frame sampling failed: %w", err)
	}
	if sampled.Degraded {
		fmt.Fprintf(s.output, "      Video could not be opened for sampling; continuing with no frames\n\n")
	} else {
		fmt.Fprintf(s.output, "      Sampled %d frames\n\n", len(sampled.Frames))
	}

	fmt.Fprintf(s.output, "[3/4] Transcribing audio...\n")
	result, err := s.transcripts.ExtractAndTranscribe(ctx, acquired.LocalPath)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Transcript: %s\n", preview(result.Text, 160))
	fmt.Fprintf(s.output, "      Detected baby cues: %s\n\n", cueList(result.Cues))

	fmt.Fprintf(s.output, "[4/4] Requesting behavioral assessment...\n")
	req := analysis.NewRequest(analysis.VisionPrompt, result, sampled.Frames, s.maxFrames)
	assessment, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return "", fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Fprintf(s.output, "\n%s\n", assessment)
	return assessment, nil
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

func cueList(cues []transcript.CueToken) string {
	if len(cues) == 0 {
		return "none"
	}
	names := make([]string, len(cues))
	for i, cue := range cues {
		names[i] = string(cue)
	}
	return strings.Join(names, ", ")
}
