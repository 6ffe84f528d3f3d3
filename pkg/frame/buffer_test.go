package frame

import (
	"image"
	"sync"
	"testing"
	"time"
)

// uniformFrame fills every sample with the same byte so a torn read is
// detectable as a mixed-value pixel buffer.
func uniformFrame(v uint8) Frame {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return New(img)
}

func TestPeekEmpty(t *testing.T) {
	b := NewBuffer()
	if _, ok := b.Peek(); ok {
		t.Fatal("peek on fresh buffer reported a frame")
	}
	if b.Seq() != 0 {
		t.Fatalf("fresh buffer seq = %d", b.Seq())
	}
}

func TestPublishReplaces(t *testing.T) {
	b := NewBuffer()
	b.Publish(uniformFrame(1))
	b.Publish(uniformFrame(2))

	f, ok := b.Peek()
	if !ok {
		t.Fatal("no frame after publish")
	}
	if f.Seq != 2 {
		t.Fatalf("seq = %d, want 2", f.Seq)
	}
	if v := f.Image.(*image.RGBA).Pix[0]; v != 2 {
		t.Fatalf("peeked stale frame (pix=%d)", v)
	}
	if f.Width != 64 || f.Height != 48 {
		t.Fatalf("dimensions %dx%d, want 64x48", f.Width, f.Height)
	}
}

func TestConcurrentPeekSeesNoTornFrames(t *testing.T) {
	b := NewBuffer()
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v := uint8(0)
		for {
			select {
			case <-done:
				return
			default:
			}
			b.Publish(uniformFrame(v))
			v++
		}
	}()

	var lastSeq uint64
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		f, ok := b.Peek()
		if !ok {
			continue
		}
		if f.Seq < lastSeq {
			t.Errorf("sequence went backwards: %d after %d", f.Seq, lastSeq)
			break
		}
		lastSeq = f.Seq

		pix := f.Image.(*image.RGBA).Pix
		first := pix[0]
		for i, v := range pix {
			if v != first {
				t.Errorf("torn frame seq %d: pix[%d]=%d, pix[0]=%d", f.Seq, i, v, first)
				break
			}
		}
		if t.Failed() {
			break
		}
	}

	close(done)
	wg.Wait()
}

func TestNewStampsTimeAndSize(t *testing.T) {
	before := time.Now()
	f := New(image.NewRGBA(image.Rect(0, 0, 3, 5)))
	if f.Width != 3 || f.Height != 5 {
		t.Fatalf("got %dx%d", f.Width, f.Height)
	}
	if f.Timestamp.Before(before) {
		t.Fatal("timestamp not taken at capture time")
	}
}
