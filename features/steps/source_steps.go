//go:build integration

package steps

import (
	"context"
	"fmt"

	"cradlewatch/domain/source"

	"github.com/cucumber/godog"
)

type sourceContext struct {
	raw  string
	kind source.Kind
}

// SharedSourceContext is reset before each scenario via After hook
var SharedSourceContext = &sourceContext{}

func InitializeSourceScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedSourceContext

	// Reset context after each scenario
	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedSourceContext = &sourceContext{}
		return c, nil
	})

	ctx.Step(`^a video source "([^"]*)"$`, testCtx.aVideoSource)
	ctx.Step(`^I classify the source$`, testCtx.iClassifyTheSource)
	ctx.Step(`^it should be treated as a local file$`, testCtx.itShouldBeLocal)
	ctx.Step(`^it should be treated as a direct download$`, testCtx.itShouldBeRemote)
	ctx.Step(`^it should be treated as platform hosted$`, testCtx.itShouldBePlatformHosted)
}

func (c *sourceContext) aVideoSource(raw string) error {
	c.raw = raw
	return nil
}

func (c *sourceContext) iClassifyTheSource() error {
	c.kind = source.Classify(c.raw)
	return nil
}

func (c *sourceContext) itShouldBeLocal() error {
	return c.expectKind(source.KindLocal)
}

func (c *sourceContext) itShouldBeRemote() error {
	return c.expectKind(source.KindRemoteFile)
}

func (c *sourceContext) itShouldBePlatformHosted() error {
	return c.expectKind(source.KindPlatformHosted)
}

func (c *sourceContext) expectKind(expected source.Kind) error {
	if c.kind != expected {
		return fmt.Errorf("expected source kind %q, got %q", expected, c.kind)
	}
	return nil
}
