package ffmpeg

import (
	"context"
	"fmt"

	"cradlewatch/infrastructure/command"
)

// Extractor renders a video's audio track to a wav file using ffmpeg.
// WAV avoids depending on an mp3 encoder being compiled in.
type Extractor struct {
	ffmpegPath string
	runner     command.Runner
}

// ExtractorOption is a functional option for configuring Extractor
type ExtractorOption func(*Extractor)

// WithExtractorFFmpegPath sets a custom ffmpeg executable path
func WithExtractorFFmpegPath(path string) ExtractorOption {
	return func(e *Extractor) {
		e.ffmpegPath = path
	}
}

// WithExtractorCommandRunner sets a custom command runner (for testing)
func WithExtractorCommandRunner(runner command.Runner) ExtractorOption {
	return func(e *Extractor) {
		e.runner = runner
	}
}

// NewExtractor creates a new FFmpeg-based audio extractor
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		ffmpegPath: "ffmpeg",
		runner:     &command.ExecRunner{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract writes the audio track of sourcePath to outputPath as PCM wav
func (e *Extractor) Extract(ctx context.Context, sourcePath, outputPath string) error {
	args := []string{
		"-i", sourcePath,
		"-vn",                    // No video
		"-acodec", "pcm_s16le",   // PCM so no codec availability concerns
		"-y",                     // Overwrite output file if it exists
		outputPath,
	}

	if err := e.runner.Run(ctx, e.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg audio extraction failed: %w", err)
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (e *Extractor) VerifyInstalled(ctx context.Context) error {
	_, err := e.runner.Output(ctx, e.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}
