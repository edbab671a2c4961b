package cmd

import (
	"fmt"
	"os"

	"cradlewatch/infrastructure/config"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cradlewatch",
	Short: "Analyze baby-monitor video with a vision-language model",
	Long: `cradlewatch turns a baby-monitor recording into a behavioral assessment:

  - Resolve a local file, direct URL, or YouTube link to a local video
  - Sample frames over a [start, end) window
  - Extract and transcribe the audio track, detecting Dunstan baby cues
  - Submit frames + transcript + cues to a vision-language model

Example:
  cradlewatch analyze --source nursery.mp4 --start-sec 2 --end-sec 5`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	// .env is optional; a missing file is not an error
	godotenv.Load()

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config file is optional; defaults plus OPENAI_API_KEY suffice
		cfg = config.Default()
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// apiKey reads the OpenAI key from the environment; credentials are
// threaded explicitly into client construction from here.
func apiKey() (string, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is not set; export it or add it to a .env file")
	}
	return key, nil
}
