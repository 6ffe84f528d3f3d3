package webdav

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestStartStop(t *testing.T) {
	s := New(context.Background(), "127.0.0.1:0", t.TempDir())

	if s.Running() {
		t.Fatal("fresh server reports running")
	}
	s.Start()
	if !s.Running() {
		t.Fatal("server not running after start")
	}
	s.Start() // no-op
	s.Stop()
	if s.Running() {
		t.Fatal("server still running after stop")
	}
	s.Start()
	if !s.Running() {
		t.Fatal("server did not restart")
	}
	s.Stop()
}

func TestHandlerServesFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "snap.jpg"), []byte("jpeg bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(handler(dir))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/snap.jpg")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "jpeg bytes" {
		t.Fatalf("unexpected body %q", body)
	}
}
