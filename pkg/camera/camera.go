// Package camera owns the single V4L2 capture device: open, synchronous
// frame reads, recovery reopen, and control access.
package camera

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"
	"go.uber.org/zap"

	"camview/pkg/frame"
	"camview/pkg/ov"
	"camview/pkg/utils"
	"camview/pkg/utils/image"
)

var logger *zap.SugaredLogger

func init() {
	logger = utils.GetLogger()
}

var (
	ErrNotOpen     = errors.New("camera not open")
	ErrReadTimeout = errors.New("timeout waiting for frame")
)

const defaultReadTimeout = 2 * time.Second

// Config is what the caller asked for. Zero Width/Height and an empty
// FourCC leave the driver's current choice in place.
type Config struct {
	Device string
	FourCC string
	Width  uint32
	Height uint32
}

// Camera serializes all device operations behind one lock, separate from
// the frame buffer's lock, so reconfiguration never races an in-flight
// read and never blocks viewers.
type Camera struct {
	mu     sync.Mutex
	dev    *device.Device
	cancel context.CancelFunc
	out    <-chan []byte

	// cfg holds the last requested configuration; cfg.Device is the
	// identifier recovery reopens use.
	cfg    Config
	pixFmt v4l2.PixFormat
	fps    uint32

	settings    controlSettings
	readTimeout time.Duration
}

type Option func(*Camera)

func WithReadTimeout(d time.Duration) Option {
	return func(c *Camera) {
		if d > 0 {
			c.readTimeout = d
		}
	}
}

func New(opts ...Option) *Camera {
	c := &Camera{
		settings:    make(controlSettings),
		readTimeout: defaultReadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Open releases any previously open device, then opens and starts the
// one described by cfg. The requested format is applied best-effort: the
// driver may adjust or ignore it, and the negotiated result is what
// Status reports afterwards.
func (c *Camera) Open(cfg Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.closeLocked(); err != nil {
		logger.Warnf("release previous device: %s", err)
	}
	if err := c.openLocked(cfg); err != nil {
		return err
	}
	c.cfg = cfg

	return nil
}

// Reopen closes and reopens the device with the original requested
// configuration. Called by the capture loop after repeated read
// failures; a failed reopen leaves the camera closed.
func (c *Camera) Reopen() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg.Device == "" {
		return ErrNotOpen
	}
	if err := c.closeLocked(); err != nil {
		logger.Warnf("release device for reopen: %s", err)
	}

	return c.openLocked(c.cfg)
}

func (c *Camera) openLocked(cfg Config) error {
	dev, err := device.Open(cfg.Device, device.WithBufferSize(1))
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.Device, err)
	}

	if cfg.FourCC != "" || cfg.Width > 0 || cfg.Height > 0 {
		if err := applyFormat(dev, cfg); err != nil {
			logger.Warnf("apply format to %s: %s", cfg.Device, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := dev.Start(ctx); err != nil {
		cancel()
		dev.Close()
		return fmt.Errorf("start %s: %w", cfg.Device, err)
	}

	c.dev = dev
	c.cancel = cancel
	c.out = dev.GetOutput()

	if pf, err := dev.GetPixFormat(); err != nil {
		logger.Warnf("query pixel format: %s", err)
		c.pixFmt = v4l2.PixFormat{}
	} else {
		c.pixFmt = pf
	}
	if fps, err := dev.GetFrameRate(); err != nil {
		c.fps = 0
	} else {
		c.fps = fps
	}

	c.applySettingsLocked()

	logger.Infof("opened %s: %dx%d %s, %d fps",
		cfg.Device, c.pixFmt.Width, c.pixFmt.Height,
		image.FourCCString(c.pixFmt.PixelFormat), c.fps)

	return nil
}

// applyFormat merges the requested fields into the driver's current
// format, leaving unspecified ones alone.
func applyFormat(dev *device.Device, cfg Config) error {
	pf, err := dev.GetPixFormat()
	if err != nil {
		return fmt.Errorf("query current format: %w", err)
	}
	if cfg.FourCC != "" {
		fcc, err := ParseFourCC(cfg.FourCC)
		if err != nil {
			logger.Warnf("ignoring fourcc %q: %s", cfg.FourCC, err)
		} else {
			pf.PixelFormat = fcc
		}
	}
	if cfg.Width > 0 {
		pf.Width = cfg.Width
	}
	if cfg.Height > 0 {
		pf.Height = cfg.Height
	}
	pf.Field = v4l2.FieldNone

	return dev.SetPixFormat(pf)
}

// ReadFrame pulls one frame synchronously, blocking up to the read
// timeout, and decodes it per the negotiated format. Decode errors count
// as read failures; retrying is the caller's business.
func (c *Camera) ReadFrame() (frame.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dev == nil {
		return frame.Frame{}, ErrNotOpen
	}

	t := time.NewTimer(c.readTimeout)
	defer t.Stop()

	select {
	case data, ok := <-c.out:
		if !ok {
			return frame.Frame{}, errors.New("device output closed")
		}
		if len(data) == 0 {
			return frame.Frame{}, errors.New("empty frame")
		}
		// The driver recycles its mmap buffers; copy before decoding.
		raw := make([]byte, len(data))
		copy(raw, data)

		img, err := image.Decode(raw, c.pixFmt.PixelFormat, int(c.pixFmt.Width), int(c.pixFmt.Height))
		if err != nil {
			return frame.Frame{}, fmt.Errorf("decode frame: %w", err)
		}
		return frame.New(img), nil
	case <-t.C:
		return frame.Frame{}, ErrReadTimeout
	}
}

// Close releases the device. Safe to call repeatedly.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closeLocked()
}

func (c *Camera) closeLocked() error {
	if c.cancel != nil {
		c.cancel()
		// Let the capture goroutine observe the cancel and stop the
		// stream before Close tears the device down.
		time.Sleep(100 * time.Millisecond)
		c.cancel = nil
	}
	if c.dev == nil {
		return nil
	}

	err := c.dev.Close()
	c.dev = nil
	c.out = nil
	c.pixFmt = v4l2.PixFormat{}
	c.fps = 0

	return err
}

func (c *Camera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dev != nil
}

// Status reports the negotiated state, which may differ from what Open
// was asked for.
func (c *Camera) Status() ov.CameraStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dev == nil {
		return ov.CameraStatus{}
	}

	return ov.CameraStatus{
		Connected: true,
		Device:    c.cfg.Device,
		Width:     c.pixFmt.Width,
		Height:    c.pixFmt.Height,
		FPS:       c.fps,
		Format:    image.FourCCString(c.pixFmt.PixelFormat),
	}
}
