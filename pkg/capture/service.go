// Package capture runs the background loop that moves frames from the
// camera into the shared frame buffer and recovers a wedged device.
package capture

import (
	"context"
	"time"

	"go.uber.org/zap"

	"camview/pkg/camera"
	"camview/pkg/frame"
	"camview/pkg/ov"
	"camview/pkg/utils"
)

var logger *zap.SugaredLogger

func init() {
	logger = utils.GetLogger()
}

const (
	defaultInterval     = 100 * time.Millisecond
	defaultIdleInterval = 500 * time.Millisecond
	defaultMaxFailures  = 5
)

// source is the slice of the camera the loop needs.
type source interface {
	IsOpen() bool
	ReadFrame() (frame.Frame, error)
	Reopen() error
}

// Service ties one camera to one frame buffer. The loop paces itself
// with a fixed sleep per pass; there is no retry inside a pass.
type Service struct {
	cam *camera.Camera
	src source
	buf *frame.Buffer

	interval     time.Duration
	idleInterval time.Duration
	maxFailures  int
}

type Option func(*Service)

func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithIdleInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.idleInterval = d
		}
	}
}

func WithMaxFailures(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFailures = n
		}
	}
}

func New(cam *camera.Camera, buf *frame.Buffer, opts ...Option) *Service {
	s := &Service{
		cam:          cam,
		src:          cam,
		buf:          buf,
		interval:     defaultInterval,
		idleInterval: defaultIdleInterval,
		maxFailures:  defaultMaxFailures,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Connect points the camera at a new device configuration. The loop
// picks up the change on its next pass.
func (s *Service) Connect(cfg camera.Config) error {
	return s.cam.Open(cfg)
}

func (s *Service) Camera() *camera.Camera {
	return s.cam
}

func (s *Service) Buffer() *frame.Buffer {
	return s.buf
}

// Status combines the camera's negotiated state with capture progress.
func (s *Service) Status() ov.Status {
	st := ov.Status{
		CameraStatus: s.cam.Status(),
		Frames:       s.buf.Seq(),
	}
	if f, ok := s.buf.Peek(); ok {
		t := f.Timestamp
		st.LastFrameAt = &t
	}

	return st
}

// Run captures until ctx is cancelled. A read failure only counts; after
// maxFailures in a row it makes exactly one reopen attempt with the
// original device path and resets the counter. A failed reopen leaves
// the camera closed and the loop idling.
func (s *Service) Run(ctx context.Context) {
	failures := 0
	for {
		if ctx.Err() != nil {
			return
		}
		if !s.src.IsOpen() {
			if !sleepCtx(ctx, s.idleInterval) {
				return
			}
			continue
		}

		f, err := s.src.ReadFrame()
		if err != nil {
			failures++
			logger.Warnf("frame capture failed (%d consecutive failures): %s", failures, err)
			if failures >= s.maxFailures {
				logger.Warn("too many consecutive failures, attempting to reopen camera")
				if err := s.src.Reopen(); err != nil {
					logger.Errorf("reopen camera: %s", err)
				}
				failures = 0
			}
		} else {
			failures = 0
			s.buf.Publish(f)
		}

		if !sleepCtx(ctx, s.interval) {
			return
		}
	}
}

// sleepCtx reports false when ctx ended the wait early.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
