package camera

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobDevices(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"video2", "video0", "video10"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	got := globDevices(filepath.Join(dir, "video*"))
	want := []string{
		filepath.Join(dir, "video0"),
		filepath.Join(dir, "video2"),
		filepath.Join(dir, "video10"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestGlobDevicesEmpty(t *testing.T) {
	got := globDevices(filepath.Join(t.TempDir(), "video*"))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}
