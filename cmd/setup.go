package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cradlewatch/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through setting up models, scratch directories,
and sampling parameters. The OpenAI API key itself is read from the
OPENAI_API_KEY environment variable, not stored in the file.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to cradlewatch setup!")
	fmt.Println()

	cfg := config.Default()

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	if err := promptSampling(prompter, cfg); err != nil {
		return err
	}

	if err := promptModels(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	frames, err := prompter.Input("Where should sampled frames go?", cfg.Paths.FrameDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if frames != "" {
		cfg.Paths.FrameDirectory = frames
	}

	scratch, err := prompter.Input("Where should temporary audio files go?", cfg.Paths.ScratchDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if scratch != "" {
		cfg.Paths.ScratchDirectory = scratch
	}

	return nil
}

func promptSampling(prompter Prompter, cfg *config.Config) error {
	interval, err := prompter.Input("Seconds between sampled frames?", strconv.FormatFloat(cfg.Sampling.IntervalSec, 'g', -1, 64))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if interval != "" {
		parsed, err := strconv.ParseFloat(interval, 64)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("interval must be a positive number")
		}
		cfg.Sampling.IntervalSec = parsed
	}

	maxFrames, err := prompter.Input("Maximum frames per request?", strconv.Itoa(cfg.Sampling.MaxFrames))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if maxFrames != "" {
		parsed, err := strconv.Atoi(maxFrames)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("maximum frames must be a positive integer")
		}
		cfg.Sampling.MaxFrames = parsed
	}

	return nil
}

func promptModels(prompter Prompter, cfg *config.Config) error {
	vision, err := prompter.Input("Vision model?", cfg.OpenAI.VisionModel)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if vision != "" {
		cfg.OpenAI.VisionModel = vision
	}

	chatVision, err := prompter.Input("Vision model for the chat fallback?", cfg.OpenAI.ChatVisionModel)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if chatVision != "" {
		cfg.OpenAI.ChatVisionModel = chatVision
	}

	transcribe, err := prompter.Input("Transcription model?", cfg.OpenAI.TranscribeModel)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if transcribe != "" {
		cfg.OpenAI.TranscribeModel = transcribe
	}

	fallback, err := prompter.Input("Transcription fallback model?", cfg.OpenAI.TranscribeFallbackModel)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if fallback != "" {
		cfg.OpenAI.TranscribeFallbackModel = fallback
	}

	disable, err := prompter.Confirm("Skip the Responses API and use Chat Completions only?", cfg.OpenAI.DisableResponsesAPI)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.OpenAI.DisableResponsesAPI = disable

	return nil
}
