// Package frame holds the most-recent-frame mailbox shared between the
// capture loop and the HTTP viewers.
package frame

import (
	"image"
	"time"
)

// Frame is one decoded capture. The Image must not be mutated after the
// frame is published; every device read decodes into fresh pixel memory,
// so readers can hold a Frame for as long as they need.
type Frame struct {
	Image  image.Image
	Width  int
	Height int

	// Timestamp is when the frame was read from the device.
	Timestamp time.Time
	// Seq is assigned by the buffer on publish, starting at 1.
	Seq uint64
}

func New(img image.Image) Frame {
	b := img.Bounds()
	return Frame{
		Image:     img,
		Width:     b.Dx(),
		Height:    b.Dy(),
		Timestamp: time.Now(),
	}
}
