package cmd

import (
	"fmt"
	"strings"

	apptranscript "cradlewatch/application/transcript"
	"cradlewatch/infrastructure/ffmpeg"
	"cradlewatch/infrastructure/filesystem"
	openaiinfra "cradlewatch/infrastructure/openai"

	"github.com/spf13/cobra"
)

var transcribeSource string

var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe the audio track of a local video",
	Long: `Extract the audio track from a local video file, transcribe it, and
print the transcript along with any detected Dunstan baby cry cues.
Videos with no audio track are reported without calling the API.`,
	RunE: runTranscribe,
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeSource, "source", "s", "", "local video file (required)")
	transcribeCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	key, err := apiKey()
	if err != nil {
		return err
	}

	checker := filesystem.NewChecker()
	if !checker.Exists(transcribeSource) {
		return fmt.Errorf("video file does not exist: %s", transcribeSource)
	}

	prober := ffmpeg.NewProber()
	extractor := ffmpeg.NewExtractor()
	if err := verifyTools(cmd.Context(), prober, extractor); err != nil {
		return err
	}

	client := openaiinfra.NewClient(key)
	transcriber := openaiinfra.NewTranscriber(client, cfg.OpenAI.TranscribeModel, cfg.OpenAI.TranscribeFallbackModel, logger)
	service := apptranscript.NewService(prober, extractor, transcriber, cfg.Paths.ScratchDirectory, logger)

	result, err := service.ExtractAndTranscribe(cmd.Context(), transcribeSource)
	if err != nil {
		return err
	}

	fmt.Println(result.Text)
	if len(result.Cues) > 0 {
		cues := make([]string, len(result.Cues))
		for i, cue := range result.Cues {
			cues[i] = string(cue)
		}
		fmt.Printf("Detected cues: %s\n", strings.Join(cues, ", "))
	} else {
		fmt.Println("Detected cues: none")
	}
	return nil
}
