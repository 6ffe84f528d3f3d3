package archive

import (
	"os"
	"testing"
)

func checkErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestSaveSnapshot(t *testing.T) {
	s, err := New(t.TempDir())
	checkErr(t, err)

	name1, err := s.SaveSnapshot([]byte("first"))
	checkErr(t, err)
	name2, err := s.SaveSnapshot([]byte("second"))
	checkErr(t, err)
	if name1 == name2 {
		t.Fatalf("snapshot names collide: %s", name1)
	}

	data, err := s.Snapshot(name2)
	checkErr(t, err)
	if string(data) != "second" {
		t.Fatalf("unexpected snapshot content %q", data)
	}

	info, err := s.Info()
	checkErr(t, err)
	if info.Snapshots != 2 {
		t.Fatalf("expected 2 snapshots, got %d", info.Snapshots)
	}
	if info.LatestSnapshot != name2 {
		t.Fatalf("latest snapshot is %q, want %q", info.LatestSnapshot, name2)
	}
	if info.UpdatedAt.IsZero() {
		t.Fatal("info update time not set")
	}
}

func TestListSnapshots(t *testing.T) {
	s, err := New(t.TempDir())
	checkErr(t, err)

	if files, err := s.ListSnapshots(); err != nil || len(files) != 0 {
		t.Fatalf("expected an empty archive, got %v (%v)", files, err)
	}

	_, err = s.SaveSnapshot(make([]byte, 2048))
	checkErr(t, err)

	files, err := s.ListSnapshots()
	checkErr(t, err)
	if len(files) != 1 {
		t.Fatalf("expected one file, got %d", len(files))
	}
	if files[0].Size == "" || files[0].ModTime.IsZero() {
		t.Fatalf("file metadata not filled: %+v", files[0])
	}
}

func TestDeleteSnapshot(t *testing.T) {
	s, err := New(t.TempDir())
	checkErr(t, err)

	name, err := s.SaveSnapshot([]byte("x"))
	checkErr(t, err)
	checkErr(t, s.DeleteSnapshot(name))

	if _, err := s.Snapshot(name); err == nil {
		t.Fatal("expected an error reading a deleted snapshot")
	}
}

func TestCheckNameRejectsTraversal(t *testing.T) {
	s, err := New(t.TempDir())
	checkErr(t, err)

	for _, name := range []string{"", ".", "..", "../etc/passwd", "a/b.jpg"} {
		if _, err := s.Snapshot(name); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
		if _, err := s.ClipPath(name); err == nil {
			t.Fatalf("expected clip path %q to be rejected", name)
		}
	}
}

func TestClipPath(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	checkErr(t, err)

	path, err := s.ClipPath("morning")
	checkErr(t, err)
	checkErr(t, os.WriteFile(path, []byte("avi data"), 0644))

	clips, err := s.ListClips()
	checkErr(t, err)
	if len(clips) != 1 || clips[0].Name != "morning.avi" {
		t.Fatalf("unexpected clip list %+v", clips)
	}

	got, err := s.Clip("morning.avi")
	checkErr(t, err)
	if got != path {
		t.Fatalf("clip path %q, want %q", got, path)
	}
	if _, err := s.Clip("evening.avi"); err == nil {
		t.Fatal("expected an error for a clip that does not exist")
	}
}
