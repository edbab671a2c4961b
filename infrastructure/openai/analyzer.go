package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"cradlewatch/domain/analysis"
	"cradlewatch/domain/sampling"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/rs/zerolog"
)

// apiShape selects which request-builder/response-parser pair is used
type apiShape int

const (
	// shapeResponses is the richer multimodal Responses API
	shapeResponses apiShape = iota

	// shapeChat is the widely supported Chat Completions vision shape,
	// used when the Responses capability is structurally disabled
	shapeChat
)

// ResponsesService defines the Responses API surface
// This allows mocking the OpenAI API in tests
type ResponsesService interface {
	Create(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error)
}

// ChatService defines the Chat Completions API surface
type ChatService interface {
	Create(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

type sdkResponsesService struct {
	client openai.Client
}

func (s *sdkResponsesService) Create(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	return s.client.Responses.New(ctx, params)
}

type sdkChatService struct {
	client openai.Client
}

func (s *sdkChatService) Create(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return s.client.Chat.Completions.New(ctx, params)
}

// Analyzer implements analysis.Analyzer against the OpenAI API
type Analyzer struct {
	shape           apiShape
	responses       ResponsesService
	chat            ChatService
	visionModel     string
	chatVisionModel string
	maxOutputTokens int
	logger          zerolog.Logger
}

// AnalyzerOption is a functional option for configuring Analyzer
type AnalyzerOption func(*Analyzer)

// WithResponsesService sets a custom Responses service (for testing)
func WithResponsesService(service ResponsesService) AnalyzerOption {
	return func(a *Analyzer) {
		a.responses = service
	}
}

// WithChatService sets a custom Chat Completions service (for testing)
func WithChatService(service ChatService) AnalyzerOption {
	return func(a *Analyzer) {
		a.chat = service
	}
}

// WithoutResponsesAPI marks the Responses capability structurally
// absent: the analyzer uses the Chat Completions shape directly,
// without attempting a Responses call first.
func WithoutResponsesAPI() AnalyzerOption {
	return func(a *Analyzer) {
		a.shape = shapeChat
	}
}

// NewAnalyzer creates an analyzer using the Responses shape unless it
// is disabled by option.
func NewAnalyzer(client openai.Client, visionModel, chatVisionModel string, maxOutputTokens int, logger zerolog.Logger, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		shape:           shapeResponses,
		responses:       &sdkResponsesService{client: client},
		chat:            &sdkChatService{client: client},
		visionModel:     visionModel,
		chatVisionModel: chatVisionModel,
		maxOutputTokens: maxOutputTokens,
		logger:          logger,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze implements analysis.Analyzer
func (a *Analyzer) Analyze(ctx context.Context, req analysis.Request) (string, error) {
	images, err := encodeFrames(req.Frames)
	if err != nil {
		return "", err
	}

	switch a.shape {
	case shapeChat:
		return a.analyzeChat(ctx, req, images)
	default:
		return a.analyzeResponses(ctx, req, images)
	}
}

// encodeFrames base64-encodes each frame image as an inline data URL
func encodeFrames(frames []sampling.Frame) ([]string, error) {
	images := make([]string, 0, len(frames))
	for _, frame := range frames {
		data, err := os.ReadFile(frame.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %s: %w", frame.Path, err)
		}
		images = append(images, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(data))
	}
	return images, nil
}

func (a *Analyzer) analyzeResponses(ctx context.Context, req analysis.Request, images []string) (string, error) {
	content := responses.ResponseInputMessageContentListParam{
		responses.ResponseInputContentUnionParam{
			OfInputText: &responses.ResponseInputTextParam{Text: req.Prompt},
		},
		responses.ResponseInputContentUnionParam{
			OfInputText: &responses.ResponseInputTextParam{Text: req.TranscriptNote()},
		},
		responses.ResponseInputContentUnionParam{
			OfInputText: &responses.ResponseInputTextParam{Text: req.CueSummary()},
		},
	}
	for _, image := range images {
		content = append(content, responses.ResponseInputContentUnionParam{
			OfInputImage: &responses.ResponseInputImageParam{
				ImageURL: openai.String(image),
				Detail:   responses.ResponseInputImageDetailAuto,
			},
		})
	}

	resp, err := a.responses.Create(ctx, responses.ResponseNewParams{
		Model:           shared.ResponsesModel(a.visionModel),
		MaxOutputTokens: openai.Int(int64(a.maxOutputTokens)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemUnionParam{
					OfMessage: &responses.EasyInputMessageParam{
						Role:    responses.EasyInputMessageRoleUser,
						Content: responses.EasyInputMessageContentUnionParam{OfInputItemContentList: content},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision analysis failed: %w", err)
	}

	return extractResponseText(resp), nil
}

// extractResponseText pulls the assessment out of a Responses API
// result: the convenience text field if populated, otherwise the first
// message block's first text entry, otherwise the raw representation.
// An absent field moves to the next strategy, never panics.
func extractResponseText(resp *responses.Response) string {
	if resp == nil {
		return ""
	}

	if text := resp.OutputText(); strings.TrimSpace(text) != "" {
		return text
	}

	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, entry := range item.Content {
			if entry.Type == "output_text" && entry.Text != "" {
				return entry.Text
			}
		}
	}

	if raw := resp.RawJSON(); raw != "" {
		return raw
	}
	return fmt.Sprintf("%+v", *resp)
}

func (a *Analyzer) analyzeChat(ctx context.Context, req analysis.Request, images []string) (string, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Prompt),
		openai.TextContentPart(req.TranscriptNote()),
		openai.TextContentPart(req.CueSummary()),
	}
	for _, image := range images {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: image}))
	}

	resp, err := a.chat.Create(ctx, openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(a.chatVisionModel),
		MaxTokens: openai.Int(int64(a.maxOutputTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{OfArrayOfContentParts: parts},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision analysis failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision analysis returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Ensure Analyzer implements analysis.Analyzer
var _ analysis.Analyzer = (*Analyzer)(nil)
