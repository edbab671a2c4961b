package ffmpeg

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockRunner records invocations and returns canned results
type mockRunner struct {
	runArgs    [][]string
	runErr     error
	outputArgs [][]string
	output     []byte
	outputErr  error
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.runArgs = append(m.runArgs, append([]string{name}, args...))
	return m.runErr
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.outputArgs = append(m.outputArgs, append([]string{name}, args...))
	return m.output, m.outputErr
}

func TestExtractorExtract(t *testing.T) {
	t.Run("builds wav extraction command", func(t *testing.T) {
		runner := &mockRunner{}
		extractor := NewExtractor(WithExtractorCommandRunner(runner))

		err := extractor.Extract(context.Background(), "in.mp4", "out.wav")
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}

		if len(runner.runArgs) != 1 {
			t.Fatalf("expected 1 invocation, got %d", len(runner.runArgs))
		}
		cmd := strings.Join(runner.runArgs[0], " ")
		for _, want := range []string{"ffmpeg", "-i in.mp4", "-vn", "pcm_s16le", "-y", "out.wav"} {
			if !strings.Contains(cmd, want) {
				t.Errorf("command %q missing %q", cmd, want)
			}
		}
	})

	t.Run("wraps runner failure", func(t *testing.T) {
		runner := &mockRunner{runErr: errors.New("exit status 1")}
		extractor := NewExtractor(WithExtractorCommandRunner(runner))

		err := extractor.Extract(context.Background(), "in.mp4", "out.wav")
		if err == nil || !strings.Contains(err.Error(), "audio extraction failed") {
			t.Errorf("Extract() error = %v, want extraction failure", err)
		}
	})
}

func TestProberHasAudio(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    bool
		wantErr bool
	}{
		{
			name:   "audio stream present",
			output: `{"streams":[{"codec_type":"audio"}]}`,
			want:   true,
		},
		{
			name:   "no audio streams",
			output: `{"streams":[]}`,
			want:   false,
		},
		{
			name:   "streams key absent",
			output: `{}`,
			want:   false,
		},
		{
			name:    "malformed json",
			output:  `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{output: []byte(tt.output)}
			prober := NewProber(WithProberCommandRunner(runner))

			got, err := prober.HasAudio(context.Background(), "in.mp4")
			if tt.wantErr {
				if err == nil {
					t.Error("HasAudio() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("HasAudio() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HasAudio() = %v, want %v", got, tt.want)
			}

			cmd := strings.Join(runner.outputArgs[0], " ")
			if !strings.Contains(cmd, "-select_streams a") {
				t.Errorf("command %q missing audio stream selector", cmd)
			}
		})
	}
}

func TestProberFailure(t *testing.T) {
	runner := &mockRunner{outputErr: errors.New("no such file")}
	prober := NewProber(WithProberCommandRunner(runner))

	if _, err := prober.HasAudio(context.Background(), "missing.mp4"); err == nil {
		t.Error("HasAudio() expected error when ffprobe fails")
	}
	if err := prober.VerifyInstalled(context.Background()); err == nil {
		t.Error("VerifyInstalled() expected error")
	}
}
