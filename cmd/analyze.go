package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cradlewatch/application/pipeline"
	apptranscript "cradlewatch/application/transcript"
	"cradlewatch/domain/analysis"
	"cradlewatch/domain/sampling"
	"cradlewatch/domain/source"
	"cradlewatch/infrastructure/acquire"
	"cradlewatch/infrastructure/config"
	"cradlewatch/infrastructure/ffmpeg"
	openaiinfra "cradlewatch/infrastructure/openai"
	"cradlewatch/infrastructure/sampler"

	"github.com/spf13/cobra"
)

var (
	analyzeSource      string
	analyzeStartSec    float64
	analyzeEndSec      float64
	analyzeInterval    float64
	analyzeCookieFile  string
	analyzeCookieStore string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full video assessment pipeline",
	Long: `Acquire a video, sample frames over the requested window, transcribe
the audio track, and submit everything to a vision-language model for a
behavioral assessment. The source may be a local file path, a direct
video URL, or a YouTube link.

Example:
  cradlewatch analyze --source nursery.mp4 --start-sec 2 --end-sec 5

  cradlewatch analyze \
    --source "https://youtu.be/abc123" \
    --cookies-from-browser "firefox:Profile 1"`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeSource, "source", "s", "", "Local path, direct URL, or YouTube link (required)")
	analyzeCmd.Flags().Float64Var(&analyzeStartSec, "start-sec", 0, "Window start in seconds")
	analyzeCmd.Flags().Float64Var(&analyzeEndSec, "end-sec", 0, "Window end in seconds, exclusive (defaults to end of video)")
	analyzeCmd.Flags().Float64Var(&analyzeInterval, "interval", 0, "Seconds between sampled frames (defaults to config value)")
	analyzeCmd.Flags().StringVar(&analyzeCookieFile, "cookie-file", "", "Netscape-format cookie file for platform downloads")
	analyzeCmd.Flags().StringVar(&analyzeCookieStore, "cookies-from-browser", "", "Browser to read platform cookies from, as browser[:profile]")

	analyzeCmd.MarkFlagRequired("source")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()

	key, err := apiKey()
	if err != nil {
		return err
	}

	hints, err := credentialHints(analyzeCookieFile, analyzeCookieStore)
	if err != nil {
		return err
	}

	window := sampling.Window{StartSec: analyzeStartSec}
	if cmd.Flags().Changed("end-sec") {
		window = sampling.Bounded(analyzeStartSec, analyzeEndSec)
	}

	interval := cfg.Sampling.IntervalSec
	if cmd.Flags().Changed("interval") {
		interval = analyzeInterval
	}

	// Create production dependencies
	prober := ffmpeg.NewProber()
	extractor := ffmpeg.NewExtractor()
	platform := acquire.NewPlatformDownloader()

	if err := verifyTools(ctx, prober, extractor); err != nil {
		return err
	}
	if source.Classify(analyzeSource) == source.KindPlatformHosted {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := platform.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("yt-dlp verification failed: %w", err)
		}
	}

	client := openaiinfra.NewClient(key)
	transcriber := openaiinfra.NewTranscriber(client, cfg.OpenAI.TranscribeModel, cfg.OpenAI.TranscribeFallbackModel, logger)
	transcripts := apptranscript.NewService(prober, extractor, transcriber, cfg.Paths.ScratchDirectory, logger)

	var analyzerOpts []openaiinfra.AnalyzerOption
	if cfg.OpenAI.DisableResponsesAPI {
		analyzerOpts = append(analyzerOpts, openaiinfra.WithoutResponsesAPI())
	}
	analyzer := openaiinfra.NewAnalyzer(client, cfg.OpenAI.VisionModel, cfg.OpenAI.ChatVisionModel, cfg.OpenAI.MaxOutputTokens, logger, analyzerOpts...)

	acquirer := acquire.New(
		platform,
		acquire.NewHTTPDownloader(
			acquire.WithUserAgent(cfg.Download.UserAgent),
			acquire.WithTimeout(time.Duration(cfg.Download.TimeoutSec)*time.Second),
		),
		logger,
	)

	input := pipeline.Input{
		Source: analyzeSource,
		Window: window,
		Hints:  hints,
	}

	return RunAnalyzeWithDependencies(
		ctx,
		cfg,
		acquirer,
		sampler.New(cfg.Paths.FrameDirectory, logger),
		transcripts,
		analyzer,
		interval,
		input,
		os.Stdout,
	)
}

// RunAnalyzeWithDependencies runs the analyze command with injected
// dependencies (for testing)
func RunAnalyzeWithDependencies(
	ctx context.Context,
	cfg *config.Config,
	acquirer source.Acquirer,
	frameSampler sampling.Sampler,
	transcripts pipeline.TranscriptService,
	analyzer analysis.Analyzer,
	intervalSec float64,
	input pipeline.Input,
	output io.Writer,
) error {
	service := pipeline.NewService(
		acquirer,
		frameSampler,
		transcripts,
		analyzer,
		cfg.Paths.FrameDirectory,
		intervalSec,
		cfg.Sampling.MaxFrames,
		output,
		logger,
	)

	_, err := service.Run(ctx, input)
	return err
}

// verifyTools fails fast when ffmpeg or ffprobe is missing, before any
// download or API traffic happens.
func verifyTools(ctx context.Context, prober *ffmpeg.Prober, extractor *ffmpeg.Extractor) error {
	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := prober.VerifyInstalled(verifyCtx); err != nil {
		return fmt.Errorf("ffprobe verification failed: %w", err)
	}
	if err := extractor.VerifyInstalled(verifyCtx); err != nil {
		return fmt.Errorf("ffmpeg verification failed: %w", err)
	}
	return nil
}

// credentialHints validates the cookie flags. The browser argument is
// browser[:profile]; a bare ":" with no browser name is rejected.
func credentialHints(cookieFile, cookieStore string) (source.CredentialHints, error) {
	hints := source.CredentialHints{CookieFile: cookieFile}
	if cookieStore == "" {
		return hints, nil
	}

	browser, profile, _ := strings.Cut(cookieStore, ":")
	browser = strings.TrimSpace(browser)
	if browser == "" {
		return source.CredentialHints{}, fmt.Errorf("--cookies-from-browser requires a browser name, e.g. chrome or firefox:Profile 1")
	}
	hints.Browser = browser
	hints.BrowserProfile = strings.TrimSpace(profile)
	return hints, nil
}
