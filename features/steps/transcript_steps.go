//go:build integration

package steps

import (
	"context"
	"fmt"
	"strings"

	"cradlewatch/domain/transcript"

	"github.com/cucumber/godog"
)

type transcriptContext struct {
	text string
	cues []transcript.CueToken
}

// SharedTranscriptContext is reset before each scenario via After hook
var SharedTranscriptContext = &transcriptContext{}

func InitializeTranscriptScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedTranscriptContext

	// Reset context after each scenario
	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedTranscriptContext = &transcriptContext{}
		return c, nil
	})

	ctx.Step(`^a transcript "([^"]*)"$`, testCtx.aTranscript)
	ctx.Step(`^I scan the transcript for cues$`, testCtx.iScanTheTranscriptForCues)
	ctx.Step(`^the detected cues should be "([^"]*)"$`, testCtx.theDetectedCuesShouldBe)
	ctx.Step(`^no cues should be detected$`, testCtx.noCuesShouldBeDetected)
}

func (c *transcriptContext) aTranscript(text string) error {
	c.text = text
	return nil
}

func (c *transcriptContext) iScanTheTranscriptForCues() error {
	c.cues = transcript.DetectCues(c.text)
	return nil
}

func (c *transcriptContext) theDetectedCuesShouldBe(expected string) error {
	got := make([]string, len(c.cues))
	for i, cue := range c.cues {
		got[i] = string(cue)
	}
	joined := strings.Join(got, ", ")
	if joined != expected {
		return fmt.Errorf("expected cues %q, got %q", expected, joined)
	}
	return nil
}

func (c *transcriptContext) noCuesShouldBeDetected() error {
	if len(c.cues) != 0 {
		return fmt.Errorf("expected no cues, got %v", c.cues)
	}
	return nil
}
