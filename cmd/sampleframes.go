package cmd

import (
	"fmt"

	"cradlewatch/domain/sampling"
	"cradlewatch/infrastructure/filesystem"
	"cradlewatch/infrastructure/sampler"

	"github.com/spf13/cobra"
)

var (
	sampleSource   string
	sampleStartSec float64
	sampleEndSec   float64
	sampleInterval float64
)

var sampleFramesCmd = &cobra.Command{
	Use:   "sample-frames",
	Short: "Sample frames from a local video without running inference",
	Long: `Extract frames from a local video file into the configured frame
directory, using the same window and interval rules as the full
pipeline. Frames are left on disk for inspection.`,
	RunE: runSampleFrames,
}

func init() {
	sampleFramesCmd.Flags().StringVarP(&sampleSource, "source", "s", "", "local video file (required)")
	sampleFramesCmd.Flags().Float64Var(&sampleStartSec, "start-sec", 0, "window start in seconds")
	sampleFramesCmd.Flags().Float64Var(&sampleEndSec, "end-sec", 0, "window end in seconds, exclusive (default: end of video)")
	sampleFramesCmd.Flags().Float64Var(&sampleInterval, "interval", 0, "seconds between sampled frames (default: from config)")
	sampleFramesCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(sampleFramesCmd)
}

func runSampleFrames(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	checker := filesystem.NewChecker()
	if !checker.Exists(sampleSource) {
		return fmt.Errorf("video file does not exist: %s", sampleSource)
	}

	window := sampling.Window{StartSec: sampleStartSec}
	if cmd.Flags().Changed("end-sec") {
		window = sampling.Bounded(sampleStartSec, sampleEndSec)
	}

	interval := cfg.Sampling.IntervalSec
	if cmd.Flags().Changed("interval") {
		interval = sampleInterval
	}

	frameSampler := sampler.New(cfg.Paths.FrameDirectory, logger)
	result, err := frameSampler.Sample(cmd.Context(), sampleSource, interval, window)
	if err != nil {
		return err
	}
	if result.Degraded {
		return fmt.Errorf("video could not be opened for sampling: %s", sampleSource)
	}

	fmt.Printf("Wrote %d frame(s) to %s\n", len(result.Frames), frameSampler.FrameDir())
	return nil
}
