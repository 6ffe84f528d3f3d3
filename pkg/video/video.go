// Package video records short MJPEG clips out of the frame buffer.
package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/icza/mjpeg"
	"go.uber.org/zap"

	"camview/pkg/frame"
	"camview/pkg/utils"
	"camview/pkg/utils/image"
)

var logger *zap.SugaredLogger

func init() {
	logger = utils.GetLogger()
}

var ErrNoFrame = errors.New("no frame available")

type Builder struct {
	width  int
	height int
	fps    int

	cnt int
	aw  mjpeg.AviWriter
}

func NewBuilder(path string, width, height, fps int) (*Builder, error) {
	aw, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, err
	}

	return &Builder{
		width:  width,
		height: height,
		fps:    fps,
		aw:     aw,
	}, nil
}

func (b *Builder) Add(frame []byte) error {
	if err := b.aw.AddFrame(frame); err != nil {
		return err
	}
	b.cnt++

	return nil
}

func (b *Builder) Close() error {
	return b.aw.Close()
}

func (b *Builder) Count() int {
	return b.cnt
}

// Record samples the buffer at the clip rate for the given duration and
// writes an AVI to path. Clip dimensions are locked to the first frame;
// frames of another size are skipped so a mid-clip reconfiguration
// cannot corrupt the file. Returns the number of frames written.
func Record(ctx context.Context, buf *frame.Buffer, path string, seconds, fps, quality int) (int, error) {
	if seconds < 1 || fps < 1 {
		return 0, fmt.Errorf("invalid clip parameters: %ds at %d fps", seconds, fps)
	}
	first, ok := buf.Peek()
	if !ok {
		return 0, ErrNoFrame
	}

	b, err := NewBuilder(path, first.Width, first.Height, fps)
	if err != nil {
		return 0, err
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	total := seconds * fps
	for i := 0; i < total; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				if err := b.Close(); err != nil {
					return b.Count(), err
				}
				return b.Count(), ctx.Err()
			case <-ticker.C:
			}
		}

		f, ok := buf.Peek()
		if !ok || f.Width != first.Width || f.Height != first.Height {
			continue
		}
		data, err := image.EncodeJPEG(f.Image, quality)
		if err != nil {
			logger.Warnf("encode clip frame: %s", err)
			continue
		}
		if err := b.Add(data); err != nil {
			b.Close()
			return b.Count(), err
		}
	}

	return b.Count(), b.Close()
}
