package camera

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenMissingDevice(t *testing.T) {
	c := New()
	defer c.Close()

	err := c.Open(Config{Device: filepath.Join(t.TempDir(), "video9")})
	if err == nil {
		t.Fatal("expected error opening a device that does not exist")
	}
	if c.IsOpen() {
		t.Fatal("camera reports open after a failed open")
	}
	if st := c.Status(); st.Connected {
		t.Fatalf("status reports connected after a failed open: %+v", st)
	}
}

func TestReadFrameNotOpen(t *testing.T) {
	c := New()

	_, err := c.ReadFrame()
	if !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	c := New()

	for i := 0; i < 3; i++ {
		if err := c.Close(); err != nil {
			t.Fatalf("close #%d: %s", i+1, err)
		}
	}
}

func TestReopenWithoutOpen(t *testing.T) {
	c := New()

	if err := c.Reopen(); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
}

func TestSetControlWhileClosed(t *testing.T) {
	c := New()

	if err := c.SetControl(9963776, 128); err != nil {
		t.Fatalf("recording a control on a closed camera: %s", err)
	}
}
