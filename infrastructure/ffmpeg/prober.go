package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"

	"cradlewatch/infrastructure/command"
)

// probeOutput maps the ffprobe JSON fields the prober cares about
type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
}

// Prober inspects video containers with ffprobe
type Prober struct {
	ffprobePath string
	runner      command.Runner
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithProberFFprobePath sets a custom ffprobe executable path
func WithProberFFprobePath(path string) ProberOption {
	return func(p *Prober) {
		p.ffprobePath = path
	}
}

// WithProberCommandRunner sets a custom command runner (for testing)
func WithProberCommandRunner(runner command.Runner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// NewProber creates a new ffprobe-based container prober
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		ffprobePath: "ffprobe",
		runner:      &command.ExecRunner{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// HasAudio reports whether the video at path carries an audio stream
func (p *Prober) HasAudio(ctx context.Context, path string) (bool, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "a",
		path,
	}

	out, err := p.runner.Output(ctx, p.ffprobePath, args...)
	if err != nil {
		return false, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var probed probeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return false, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	return len(probed.Streams) > 0, nil
}

// VerifyInstalled checks that ffprobe is available
func (p *Prober) VerifyInstalled(ctx context.Context) error {
	_, err := p.runner.Output(ctx, p.ffprobePath, "-version")
	if err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}
