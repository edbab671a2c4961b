package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cradlewatch/domain/transcript"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AudioProber reports whether a video carries an audio track
type AudioProber interface {
	HasAudio(ctx context.Context, path string) (bool, error)
}

// AudioExtractor renders a video's audio track to a file
type AudioExtractor interface {
	Extract(ctx context.Context, sourcePath, outputPath string) error
}

// Service coordinates audio extraction, transcription and cue detection
type Service struct {
	prober      AudioProber
	extractor   AudioExtractor
	transcriber transcript.Transcriber
	scratchDir  string
	logger      zerolog.Logger
}

// NewService creates a new transcript service
func NewService(prober AudioProber, extractor AudioExtractor, transcriber transcript.Transcriber, scratchDir string, logger zerolog.Logger) *Service {
	return &Service{
		prober:      prober,
		extractor:   extractor,
		transcriber: transcriber,
		scratchDir:  scratchDir,
		logger:      logger,
	}
}

// ExtractAndTranscribe extracts the video's audio track, transcribes it
// and scans the text for cue tokens. A video without audio is a normal
// outcome: the sentinel transcript with an empty cue set is returned
// and no transcription call is made. The scratch audio file is removed
// after transcription regardless of outcome; a deletion failure is
// logged, never escalated.
func (s *Service) ExtractAndTranscribe(ctx context.Context, videoPath string) (transcript.Result, error) {
	hasAudio, err := s.prober.HasAudio(ctx, videoPath)
	if err != nil {
		return transcript.Result{}, fmt.Errorf("failed to probe audio track: %w", err)
	}
	if !hasAudio {
		return transcript.NoAudio(), nil
	}

	if err := os.MkdirAll(s.scratchDir, 0755); err != nil {
		return transcript.Result{}, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	// uuid suffix keeps concurrent runs on a shared scratch dir from colliding
	audioPath := filepath.Join(s.scratchDir, fmt.Sprintf("video_audio_%s.wav", uuid.NewString()))
	if err := s.extractor.Extract(ctx, videoPath, audioPath); err != nil {
		return transcript.Result{}, fmt.Errorf("audio extraction failed: %w", err)
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", audioPath).Msg("failed to remove scratch audio file")
		}
	}()

	text, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return transcript.Result{}, err
	}

	return transcript.Result{Text: text, Cues: transcript.DetectCues(text)}, nil
}
