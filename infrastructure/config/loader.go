package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Paths    PathsConfig    `yaml:"paths"`
	Sampling SamplingConfig `yaml:"sampling"`
	Download DownloadConfig `yaml:"download"`
}

// OpenAIConfig contains model selection and request budgets
type OpenAIConfig struct {
	// VisionModel is used for the Responses API request shape
	VisionModel string `yaml:"vision_model"`

	// ChatVisionModel is used for the Chat Completions fallback shape
	ChatVisionModel string `yaml:"chat_vision_model"`

	TranscribeModel         string `yaml:"transcribe_model"`
	TranscribeFallbackModel string `yaml:"transcribe_fallback_model"`
	MaxOutputTokens         int    `yaml:"max_output_tokens"`

	// DisableResponsesAPI forces the Chat Completions shape without
	// attempting a Responses call (capability structurally absent)
	DisableResponsesAPI bool `yaml:"disable_responses_api"`
}

// PathsConfig contains scratch directory locations
type PathsConfig struct {
	FrameDirectory   string `yaml:"frame_directory"`
	ScratchDirectory string `yaml:"scratch_directory"`
}

// SamplingConfig contains frame sampling settings
type SamplingConfig struct {
	IntervalSec float64 `yaml:"interval_sec"`
	MaxFrames   int     `yaml:"max_frames"`
}

// DownloadConfig contains settings for generic URL downloads
type DownloadConfig struct {
	UserAgent  string `yaml:"user_agent"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.OpenAI.VisionModel == "" {
		c.OpenAI.VisionModel = "gpt-4.1-mini"
	}
	if c.OpenAI.ChatVisionModel == "" {
		c.OpenAI.ChatVisionModel = "gpt-4o-mini"
	}
	if c.OpenAI.TranscribeModel == "" {
		c.OpenAI.TranscribeModel = "gpt-4o-transcribe"
	}
	if c.OpenAI.TranscribeFallbackModel == "" {
		c.OpenAI.TranscribeFallbackModel = "whisper-1"
	}
	if c.OpenAI.MaxOutputTokens == 0 {
		c.OpenAI.MaxOutputTokens = 300
	}
	if c.Paths.FrameDirectory == "" {
		c.Paths.FrameDirectory = "data/scratch/frames"
	}
	if c.Paths.ScratchDirectory == "" {
		c.Paths.ScratchDirectory = "data/scratch"
	}
	if c.Sampling.IntervalSec == 0 {
		c.Sampling.IntervalSec = 0.5
	}
	if c.Sampling.MaxFrames == 0 {
		c.Sampling.MaxFrames = 12
	}
	if c.Download.UserAgent == "" {
		c.Download.UserAgent = "Mozilla/5.0 cradlewatch/1.0"
	}
	if c.Download.TimeoutSec == 0 {
		c.Download.TimeoutSec = 120
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Unset fields fall back to their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
