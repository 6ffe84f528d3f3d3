// Package stream turns buffered frames into multipart MJPEG responses.
package stream

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"go.uber.org/zap"

	"camview/pkg/frame"
	"camview/pkg/utils"
	"camview/pkg/utils/image"
)

var logger *zap.SugaredLogger

func init() {
	logger = utils.GetLogger()
}

// Boundary is fixed so the stream content type never changes across
// reconnects or camera swaps.
const Boundary = "frame"

const (
	defaultInterval = 50 * time.Millisecond
	defaultQuality  = 90
)

// Streamer encodes whatever the buffer holds for one viewer at a time.
// Viewers never touch the camera; a stalled or absent device only means
// they keep seeing the last frame or the placeholder.
type Streamer struct {
	buf      *frame.Buffer
	quality  int
	interval time.Duration
}

type Option func(*Streamer)

func WithQuality(q int) Option {
	return func(s *Streamer) {
		if q >= 1 && q <= 100 {
			s.quality = q
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(s *Streamer) {
		if d > 0 {
			s.interval = d
		}
	}
}

func New(buf *frame.Buffer, opts ...Option) *Streamer {
	s := &Streamer{
		buf:      buf,
		quality:  defaultQuality,
		interval: defaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// EncodeLatest encodes the buffered frame, or the placeholder when
// nothing has been captured yet.
func (s *Streamer) EncodeLatest() ([]byte, error) {
	f, ok := s.buf.Peek()
	if !ok {
		return image.EncodeJPEG(Placeholder(), s.quality)
	}

	return image.EncodeJPEG(f.Image, s.quality)
}

// Stream writes multipart JPEG parts to w until ctx ends or the client
// goes away. The first part goes out immediately; after that one part
// per tick. An encode failure skips the tick, nothing more.
func (s *Streamer) Stream(ctx context.Context, w http.ResponseWriter) {
	mimeWriter := multipart.NewWriter(w)
	if err := mimeWriter.SetBoundary(Boundary); err != nil {
		logger.Errorf("set multipart boundary: %s", err)
		return
	}
	w.Header().Set("Content-Type", fmt.Sprintf("multipart/x-mixed-replace; boundary=%s", mimeWriter.Boundary()))
	partHeader := make(textproto.MIMEHeader)
	partHeader.Add("Content-Type", "image/jpeg")

	rc := http.NewResponseController(w)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		data, err := s.EncodeLatest()
		if err != nil {
			logger.Warnf("failed to encode image: %s", err)
		} else {
			partWriter, err := mimeWriter.CreatePart(partHeader)
			if err != nil {
				logger.Debugf("failed to create multi-part writer: %s", err)
				return
			}
			if _, err := partWriter.Write(data); err != nil {
				logger.Debugf("failed to write image: %s", err)
				return
			}
			if err := rc.Flush(); err != nil {
				logger.Debugf("failed to Flush image: %s", err)
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
