// Package openai adapts the OpenAI SDK to the transcript and analysis
// ports. The SDK surface is wrapped in small service interfaces so the
// fallback policies can be tested without network calls.
package openai

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// NewClient builds an SDK client from an explicit API key. Credentials
// are threaded in by the caller; there is no process-wide client.
func NewClient(apiKey string) openai.Client {
	return openai.NewClient(option.WithAPIKey(apiKey))
}
