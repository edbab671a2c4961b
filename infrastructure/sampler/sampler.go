package sampler

import (
	"context"
	"fmt"
	"path/filepath"

	"cradlewatch/domain/sampling"
	"cradlewatch/infrastructure/filesystem"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// Sampler extracts frames from a video with GoCV at a fixed interval
type Sampler struct {
	frameDir string
	logger   zerolog.Logger
}

// New creates a sampler writing frames into frameDir
func New(frameDir string, logger zerolog.Logger) *Sampler {
	return &Sampler{
		frameDir: frameDir,
		logger:   logger,
	}
}

// FrameDir returns the scratch directory frames are written to
func (s *Sampler) FrameDir() string {
	return s.frameDir
}

// Sample implements sampling.Sampler. The frame directory is cleared
// before sampling so no frames from a prior run survive. A video that
// cannot be opened yields a Degraded result with zero frames, not an
// error.
func (s *Sampler) Sample(ctx context.Context, videoPath string, intervalSec float64, window sampling.Window) (sampling.Result, error) {
	window, normalized := window.Normalize()
	if normalized {
		s.logger.Warn().Msg("end timestamp must be greater than start; processing full video instead")
	}

	if err := filesystem.EnsureCleanDir(s.frameDir, s.logger); err != nil {
		return sampling.Result{}, fmt.Errorf("failed to prepare frame directory: %w", err)
	}

	capture, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		s.logger.Error().Err(err).Str("video", videoPath).Msg("error opening video file")
		return sampling.Result{Degraded: true}, nil
	}
	defer capture.Close()

	if !capture.IsOpened() {
		s.logger.Error().Str("video", videoPath).Msg("error opening video file")
		return sampling.Result{Degraded: true}, nil
	}

	plan := sampling.NewPlan(capture.Get(gocv.VideoCaptureFPS), intervalSec, window)

	if window.StartSec > 0 {
		capture.Set(gocv.VideoCapturePosMsec, window.StartSec*1000)
	}
	startFrame := plan.StartFrame()
	if pos := capture.Get(gocv.VideoCapturePosFrames); pos > 0 {
		startFrame = int(pos)
	}

	img := gocv.NewMat()
	defer img.Close()

	var frames []sampling.Frame
	for loopIdx := 0; ; loopIdx++ {
		select {
		case <-ctx.Done():
			return sampling.Result{Frames: frames}, ctx.Err()
		default:
		}

		absFrame := startFrame + loopIdx
		if plan.Done(absFrame) {
			break
		}

		if ok := capture.Read(&img); !ok || img.Empty() {
			break
		}

		if !plan.Keep(loopIdx) {
			continue
		}

		outPath := filepath.Join(s.frameDir, sampling.FrameFileName(absFrame))
		if ok := gocv.IMWrite(outPath, img); !ok {
			s.logger.Warn().Str("path", outPath).Msg("failed to write frame")
			continue
		}
		frames = append(frames, sampling.Frame{Index: absFrame, Path: outPath})
	}

	return sampling.Result{Frames: frames}, nil
}

// Ensure Sampler implements sampling.Sampler
var _ sampling.Sampler = (*Sampler)(nil)
