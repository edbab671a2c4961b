package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cradlewatch/domain/analysis"
	"cradlewatch/domain/sampling"
	"cradlewatch/domain/source"
	"cradlewatch/domain/transcript"

	"github.com/rs/zerolog"
)

// --- Mock implementations for testing ---

type mockAcquirer struct {
	acquired source.Acquired
	err      error
}

func (m *mockAcquirer) Acquire(ctx context.Context, rawSource string, hints source.CredentialHints) (source.Acquired, error) {
	if m.err != nil {
		return source.Acquired{}, m.err
	}
	return m.acquired, nil
}

type mockSampler struct {
	result sampling.Result
	err    error
}

func (m *mockSampler) Sample(ctx context.Context, videoPath string, intervalSec float64, window sampling.Window) (sampling.Result, error) {
	if m.err != nil {
		return sampling.Result{}, m.err
	}
	return m.result, nil
}

type mockTranscriptService struct {
	result transcript.Result
	err    error
}

func (m *mockTranscriptService) ExtractAndTranscribe(ctx context.Context, videoPath string) (transcript.Result, error) {
	if m.err != nil {
		return transcript.Result{}, m.err
	}
	return m.result, nil
}

type mockAnalyzer struct {
	assessment string
	err        error
	got        analysis.Request
	calls      int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, req analysis.Request) (string, error) {
	m.calls++
	m.got = req
	if m.err != nil {
		return "", m.err
	}
	return m.assessment, nil
}

// fixture creates a populated directory that must be gone after a run
func populatedDir(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "payload"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func assertGone(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed, stat err = %v", path, err)
	}
}

func frames(n int) []sampling.Frame {
	out := make([]sampling.Frame, n)
	for i := range out {
		out[i] = sampling.Frame{Index: i * 15, Path: sampling.FrameFileName(i * 15)}
	}
	return out
}

func newService(acquirer source.Acquirer, sampler sampling.Sampler, transcripts TranscriptService, analyzer analysis.Analyzer, frameDir string, output *bytes.Buffer) *Service {
	return NewService(acquirer, sampler, transcripts, analyzer, frameDir, 0.5, analysis.DefaultMaxFrames, output, zerolog.Nop())
}

func TestRunSuccess(t *testing.T) {
	tempDir := populatedDir(t, "download")
	frameDir := populatedDir(t, "frames")

	var output bytes.Buffer
	analyzer := &mockAnalyzer{assessment: "Early hunger cues; offer a feed."}
	service := newService(
		&mockAcquirer{acquired: source.Acquired{LocalPath: "video.mp4", TempDir: tempDir}},
		&mockSampler{result: sampling.Result{Frames: frames(4)}},
		&mockTranscriptService{result: transcript.Result{Text: "NEH twice", Cues: []transcript.CueToken{transcript.CueNeh}}},
		analyzer,
		frameDir,
		&output,
	)

	got, err := service.Run(context.Background(), Input{Source: "video.mp4"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "Early hunger cues; offer a feed." {
		t.Errorf("assessment = %q", got)
	}

	// Assessment is delivered on the observable output channel too
	if !strings.Contains(output.String(), "Early hunger cues; offer a feed.") {
		t.Errorf("output missing assessment:\n%s", output.String())
	}
	if !strings.Contains(output.String(), "Detected baby cues: NEH") {
		t.Errorf("output missing cue line:\n%s", output.String())
	}

	assertGone(t, tempDir)
	assertGone(t, frameDir)
}

func TestRunRequestAssembly(t *testing.T) {
	var output bytes.Buffer
	analyzer := &mockAnalyzer{assessment: "ok"}
	service := newService(
		&mockAcquirer{acquired: source.Acquired{LocalPath: "video.mp4"}},
		&mockSampler{result: sampling.Result{Frames: frames(40)}},
		&mockTranscriptService{result: transcript.Result{Text: "quiet"}},
		analyzer,
		filepath.Join(t.TempDir(), "frames"),
		&output,
	)

	if _, err := service.Run(context.Background(), Input{Source: "video.mp4"}); err != nil {
		t.Fatal(err)
	}

	if len(analyzer.got.Frames) != 12 {
		t.Errorf("analyzer received %d frames, want capped 12", len(analyzer.got.Frames))
	}
	for i, frame := range analyzer.got.Frames {
		if frame.Index != i*15 {
			t.Errorf("frame %d has index %d, want ascending order preserved", i, frame.Index)
		}
	}
	if analyzer.got.Prompt != analysis.VisionPrompt {
		t.Error("request prompt is not the vision prompt")
	}
}

func TestRunDegradedSampling(t *testing.T) {
	var output bytes.Buffer
	analyzer := &mockAnalyzer{assessment: "audio-only assessment"}
	service := newService(
		&mockAcquirer{acquired: source.Acquired{LocalPath: "broken.mp4"}},
		&mockSampler{result: sampling.Result{Degraded: true}},
		&mockTranscriptService{result: transcript.Result{Text: "still audible"}},
		analyzer,
		filepath.Join(t.TempDir(), "frames"),
		&output,
	)

	got, err := service.Run(context.Background(), Input{Source: "broken.mp4"})
	if err != nil {
		t.Fatalf("Run() error = %v, degraded sampling must not abort", err)
	}
	if got != "audio-only assessment" {
		t.Errorf("assessment = %q", got)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer calls = %d, inference still runs with zero frames", analyzer.calls)
	}
	if len(analyzer.got.Frames) != 0 {
		t.Errorf("analyzer received %d frames, want 0", len(analyzer.got.Frames))
	}
	if !strings.Contains(output.String(), "could not be opened") {
		t.Errorf("output missing degradation notice:\n%s", output.String())
	}
}

func TestRunCleanupOnFailures(t *testing.T) {
	stageErr := errors.New("stage blew up")

	tests := []struct {
		name        string
		sampler     sampling.Sampler
		transcripts TranscriptService
		analyzer    analysis.Analyzer
		wantStage   string
	}{
		{
			name:        "sampling failure",
			sampler:     &mockSampler{err: stageErr},
			transcripts: &mockTranscriptService{},
			analyzer:    &mockAnalyzer{},
			wantStage:   "frame sampling failed",
		},
		{
			name:        "transcription failure",
			sampler:     &mockSampler{result: sampling.Result{Frames: frames(2)}},
			transcripts: &mockTranscriptService{err: stageErr},
			analyzer:    &mockAnalyzer{},
			wantStage:   "transcription failed",
		},
		{
			name:        "analysis failure",
			sampler:     &mockSampler{result: sampling.Result{Frames: frames(2)}},
			transcripts: &mockTranscriptService{result: transcript.Result{Text: "x"}},
			analyzer:    &mockAnalyzer{err: stageErr},
			wantStage:   "analysis failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := populatedDir(t, "download")
			frameDir := populatedDir(t, "frames")

			var output bytes.Buffer
			service := newService(
				&mockAcquirer{acquired: source.Acquired{LocalPath: "video.mp4", TempDir: tempDir}},
				tt.sampler,
				tt.transcripts,
				tt.analyzer,
				frameDir,
				&output,
			)

			_, err := service.Run(context.Background(), Input{Source: "video.mp4"})
			if err == nil {
				t.Fatal("Run() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantStage) {
				t.Errorf("error = %v, want stage context %q", err, tt.wantStage)
			}
			if !errors.Is(err, stageErr) {
				t.Errorf("error = %v, want wrapped cause", err)
			}

			assertGone(t, tempDir)
			assertGone(t, frameDir)
		})
	}
}

func TestRunAcquisitionFailure(t *testing.T) {
	var output bytes.Buffer
	service := newService(
		&mockAcquirer{err: errors.New("404 not found")},
		&mockSampler{},
		&mockTranscriptService{},
		&mockAnalyzer{},
		filepath.Join(t.TempDir(), "frames"),
		&output,
	)

	_, err := service.Run(context.Background(), Input{Source: "https://example.com/missing.mp4"})
	if err == nil {
		t.Fatal("Run() expected error")
	}
	if !strings.Contains(err.Error(), "acquisition failed") {
		t.Errorf("error = %v, want acquisition context", err)
	}
}

func TestRunTranscriptPreviewTruncation(t *testing.T) {
	long := strings.Repeat("a", 200)

	var output bytes.Buffer
	service := newService(
		&mockAcquirer{acquired: source.Acquired{LocalPath: "video.mp4"}},
		&mockSampler{result: sampling.Result{Frames: frames(1)}},
		&mockTranscriptService{result: transcript.Result{Text: long}},
		&mockAnalyzer{assessment: "ok"},
		filepath.Join(t.TempDir(), "frames"),
		&output,
	)

	if _, err := service.Run(context.Background(), Input{Source: "video.mp4"}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(output.String(), long) {
		t.Error("output contains untruncated 200-char transcript")
	}
	if !strings.Contains(output.String(), strings.Repeat("a", 160)+"…") {
		t.Error("output missing truncated transcript preview")
	}
}
