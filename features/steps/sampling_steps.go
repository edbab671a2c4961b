//go:build integration

package steps

import (
	"context"
	"fmt"

	"cradlewatch/domain/sampling"

	"github.com/cucumber/godog"
)

type samplingContext struct {
	window sampling.Window
	plan   sampling.Plan
	kept   []int
}

// SharedSamplingContext is reset before each scenario via After hook
var SharedSamplingContext = &samplingContext{}

func InitializeSamplingScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedSamplingContext

	// Reset context after each scenario
	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedSamplingContext = &samplingContext{}
		return c, nil
	})

	ctx.Step(`^a sampling window from ([\d.]+) to ([\d.]+) seconds$`, testCtx.aBoundedWindow)
	ctx.Step(`^a sampling window covering the full video$`, testCtx.aFullWindow)
	ctx.Step(`^I plan sampling at ([\d.]+) frames per second every ([\d.]+) seconds$`, testCtx.iPlanSampling)
	ctx.Step(`^(\d+) frames should be kept$`, testCtx.framesShouldBeKept)
	ctx.Step(`^the first kept frame should be index (\d+)$`, testCtx.firstKeptFrameShouldBe)
}

func (c *samplingContext) aBoundedWindow(startSec, endSec float64) error {
	c.window = sampling.Bounded(startSec, endSec)
	return nil
}

func (c *samplingContext) aFullWindow() error {
	c.window = sampling.FullVideo()
	return nil
}

func (c *samplingContext) iPlanSampling(fps, intervalSec float64) error {
	window, _ := c.window.Normalize()
	c.plan = sampling.NewPlan(fps, intervalSec, window)

	// Walk the schedule the way the decoder loop does, bounded so an
	// unbounded window cannot spin forever.
	c.kept = nil
	absFrame := c.plan.StartFrame()
	for loopIdx := 0; loopIdx < 10000; loopIdx++ {
		if c.plan.Done(absFrame) {
			break
		}
		if c.plan.Keep(loopIdx) {
			c.kept = append(c.kept, absFrame)
		}
		absFrame++
	}
	return nil
}

func (c *samplingContext) framesShouldBeKept(expected int) error {
	if len(c.kept) != expected {
		return fmt.Errorf("expected %d kept frames, got %d (%v)", expected, len(c.kept), c.kept)
	}
	return nil
}

func (c *samplingContext) firstKeptFrameShouldBe(expected int) error {
	if len(c.kept) == 0 {
		return fmt.Errorf("no frames were kept")
	}
	if c.kept[0] != expected {
		return fmt.Errorf("expected first kept frame %d, got %d", expected, c.kept[0])
	}
	return nil
}
