package sampling

import "testing"

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name     string
		fps      float64
		interval float64
		wantFPS  float64
		wantSkip int
	}{
		{
			name:     "half second at 30fps",
			fps:      30,
			interval: 0.5,
			wantFPS:  30,
			wantSkip: 15,
		},
		{
			name:     "one second at 24fps",
			fps:      24,
			interval: 1,
			wantFPS:  24,
			wantSkip: 24,
		},
		{
			name:     "zero fps assumes default",
			fps:      0,
			interval: 0.5,
			wantFPS:  DefaultFPS,
			wantSkip: 15,
		},
		{
			name:     "interval shorter than a frame clamps to one",
			fps:      30,
			interval: 0.01,
			wantFPS:  30,
			wantSkip: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewPlan(tt.fps, tt.interval, FullVideo())
			if plan.FPS != tt.wantFPS {
				t.Errorf("FPS = %v, want %v", plan.FPS, tt.wantFPS)
			}
			if plan.FrameSkip != tt.wantSkip {
				t.Errorf("FrameSkip = %d, want %d", plan.FrameSkip, tt.wantSkip)
			}
		})
	}
}

// Simulates reading a 10-second 30fps video over the window [2s, 5s)
// at a 0.5s interval: samples land at 2.0, 2.5, 3.0, 3.5, 4.0, 4.5 —
// six frames, with nothing at or past the exclusive 5s bound.
func TestPlanWindowedSchedule(t *testing.T) {
	window, _ := Bounded(2, 5).Normalize()
	plan := NewPlan(30, 0.5, window)

	const totalFrames = 300 // 10s at 30fps

	startFrame := plan.StartFrame()
	if startFrame != 60 {
		t.Fatalf("StartFrame() = %d, want 60", startFrame)
	}

	var sampled []int
	for loopIdx := 0; ; loopIdx++ {
		absFrame := startFrame + loopIdx
		if plan.Done(absFrame) {
			break
		}
		if absFrame >= totalFrames {
			break
		}
		if plan.Keep(loopIdx) {
			sampled = append(sampled, absFrame)
		}
	}

	want := []int{60, 75, 90, 105, 120, 135}
	if len(sampled) != len(want) {
		t.Fatalf("sampled %d frames (%v), want %d", len(sampled), sampled, len(want))
	}
	for i, idx := range want {
		if sampled[i] != idx {
			t.Errorf("sample %d at frame %d, want %d", i, sampled[i], idx)
		}
	}
}

func TestPlanUnboundedNeverDone(t *testing.T) {
	plan := NewPlan(30, 0.5, FullVideo())
	if plan.Done(1_000_000) {
		t.Error("unbounded plan reported Done")
	}
}

func TestFrameFileName(t *testing.T) {
	if got := FrameFileName(75); got != "frame_0000075.jpg" {
		t.Errorf("FrameFileName(75) = %q, want frame_0000075.jpg", got)
	}
}
