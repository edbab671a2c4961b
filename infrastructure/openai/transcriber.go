package openai

import (
	"context"
	"fmt"
	"os"

	"cradlewatch/domain/transcript"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog"
)

// SpeechService defines the transcription API surface
// This allows mocking the OpenAI API in tests
type SpeechService interface {
	Transcribe(ctx context.Context, model, audioPath, prompt string) (string, error)
}

// sdkSpeechService is the production implementation using the OpenAI SDK
type sdkSpeechService struct {
	client openai.Client
}

func (s *sdkSpeechService) Transcribe(ctx context.Context, model, audioPath, prompt string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	resp, err := s.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:  openai.AudioModel(model),
		File:   f,
		Prompt: openai.String(prompt),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Transcriber implements transcript.Transcriber with a primary model
// and a lower-fidelity fallback tried once on any primary failure.
type Transcriber struct {
	service       SpeechService
	primaryModel  string
	fallbackModel string
	prompt        string
	logger        zerolog.Logger
}

// TranscriberOption is a functional option for configuring Transcriber
type TranscriberOption func(*Transcriber)

// WithSpeechService sets a custom speech service (for testing)
func WithSpeechService(service SpeechService) TranscriberOption {
	return func(t *Transcriber) {
		t.service = service
	}
}

// WithTranscriptionPrompt overrides the domain prompt sent with audio
func WithTranscriptionPrompt(prompt string) TranscriberOption {
	return func(t *Transcriber) {
		t.prompt = prompt
	}
}

// NewTranscriber creates a transcriber with the given model pair
func NewTranscriber(client openai.Client, primaryModel, fallbackModel string, logger zerolog.Logger, opts ...TranscriberOption) *Transcriber {
	t := &Transcriber{
		service:       &sdkSpeechService{client: client},
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
		prompt:        transcript.TranscriptionPrompt,
		logger:        logger,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Transcribe implements transcript.Transcriber. On any error from the
// primary model it retries once with the fallback model; the fallback
// text is returned verbatim, never merged with partial primary output.
// If the fallback also fails, that error propagates.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	text, err := t.service.Transcribe(ctx, t.primaryModel, audioPath, t.prompt)
	if err == nil {
		return text, nil
	}

	t.logger.Warn().Err(err).
		Str("model", t.primaryModel).
		Str("fallback", t.fallbackModel).
		Msg("transcription failed; retrying with fallback model")

	text, fallbackErr := t.service.Transcribe(ctx, t.fallbackModel, audioPath, t.prompt)
	if fallbackErr != nil {
		return "", fmt.Errorf("transcription failed with %s and fallback %s: %w", t.primaryModel, t.fallbackModel, fallbackErr)
	}
	return text, nil
}

// Ensure Transcriber implements transcript.Transcriber
var _ transcript.Transcriber = (*Transcriber)(nil)
