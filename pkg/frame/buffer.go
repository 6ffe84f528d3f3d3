package frame

import (
	"sync"
)

// Buffer keeps exactly the latest frame. One writer (the capture loop)
// replaces it, any number of readers peek it; a reader sees either the
// previous frame or the new one, never a mix, and stale frames are
// dropped rather than queued.
//
// The buffer has its own lock, independent of the device lock, so a slow
// or blocked device operation never stalls viewers.
type Buffer struct {
	mu  sync.RWMutex
	cur Frame
	set bool
	seq uint64
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Publish replaces the held frame and stamps it with the next sequence
// number.
func (b *Buffer) Publish(f Frame) {
	b.mu.Lock()
	b.seq++
	f.Seq = b.seq
	b.cur = f
	b.set = true
	b.mu.Unlock()
}

// Peek returns the latest frame, or false if nothing was ever published.
func (b *Buffer) Peek() (Frame, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cur, b.set
}

// Seq reports how many frames have been published.
func (b *Buffer) Seq() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.seq
}
