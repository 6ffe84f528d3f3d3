// Package archive persists snapshots and clips under one data directory
// and tracks a small info file alongside them. The directory is also
// what the WebDAV export serves.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
)

const (
	snapshotsDir = "snapshots"
	clipsDir     = "clips"
	infoFile     = "info.json"

	snapshotExt = ".jpg"
	clipExt     = ".avi"

	defaultFilePerm = 0660
	defaultDirPerm  = 0750
)

type Info struct {
	Snapshots      int    `json:"snapshots"`
	LatestSnapshot string `json:"latestSnapshot"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// File is a directory listing entry; Size is already humanized for
// direct display.
type File struct {
	Name    string    `json:"name"`
	Size    string    `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// Store is safe for concurrent use; the lock covers the info file, not
// reads of already saved files.
type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive dir can not be empty")
	}
	s := &Store{dir: dir}
	if err := mkdirAll(s.snapshotDir(), s.clipDir()); err != nil {
		return nil, err
	}
	if err := s.checkInitInfo(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// SaveSnapshot writes encoded JPEG bytes under a timestamped name and
// returns the name. Saves within the same second get a counter suffix
// so names never repeat.
func (s *Store) SaveSnapshot(data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.loadInfo()
	if err != nil {
		return "", err
	}

	name := s.nextSnapshotName(info.Snapshots)
	if err := os.WriteFile(filepath.Join(s.snapshotDir(), name), data, defaultFilePerm); err != nil {
		return "", err
	}

	info.Snapshots++
	info.LatestSnapshot = name
	if err := s.dumpInfo(info); err != nil {
		return "", err
	}

	return name, nil
}

func (s *Store) nextSnapshotName(counter int) string {
	base := "snapshot_" + time.Now().Format("20060102-150405")
	name := base + snapshotExt
	for i := counter; ; i++ {
		if _, err := os.Stat(filepath.Join(s.snapshotDir(), name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s-%d%s", base, i, snapshotExt)
	}
}

func (s *Store) Snapshot(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.snapshotDir(), name))
	if err != nil {
		return nil, fmt.Errorf("snapshot not found, %w", err)
	}

	return data, nil
}

func (s *Store) DeleteSnapshot(name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	return os.Remove(filepath.Join(s.snapshotDir(), name))
}

func (s *Store) ListSnapshots() ([]File, error) {
	return listFiles(s.snapshotDir(), snapshotExt)
}

// ClipPath returns where a new or existing clip lives. The recorder
// writes there directly.
func (s *Store) ClipPath(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if !strings.HasSuffix(name, clipExt) {
		name += clipExt
	}

	return filepath.Join(s.clipDir(), name), nil
}

// Clip returns the path of an existing clip for download.
func (s *Store) Clip(name string) (string, error) {
	path, err := s.ClipPath(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("clip not found, %w", err)
	}

	return path, nil
}

func (s *Store) DeleteClip(name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	return os.Remove(filepath.Join(s.clipDir(), name))
}

func (s *Store) ListClips() ([]File, error) {
	return listFiles(s.clipDir(), clipExt)
}

func (s *Store) Info() (*Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadInfo()
}

func listFiles(dir, ext string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	res := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		res = append(res, File{
			Name:    e.Name(),
			Size:    humanize.Bytes(uint64(fi.Size())),
			ModTime: fi.ModTime(),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name > res[j].Name
	})

	return res, nil
}

// checkName rejects anything that could escape the archive directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("invalid file name %q", name)
	}

	return nil
}

func (s *Store) loadInfo() (*Info, error) {
	data, err := os.ReadFile(s.infoPath())
	if err != nil {
		return nil, fmt.Errorf("read archive info err: %w", err)
	}
	info := &Info{}
	if err = json.Unmarshal(data, info); err != nil {
		return nil, fmt.Errorf("unmarshal archive info err: %w", err)
	}

	return info, nil
}

func (s *Store) dumpInfo(info *Info) error {
	info.UpdatedAt = time.Now()
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}

	return os.WriteFile(s.infoPath(), data, defaultFilePerm)
}

func (s *Store) checkInitInfo() error {
	_, err := os.Stat(s.infoPath())
	if os.IsNotExist(err) {
		return s.dumpInfo(&Info{})
	}

	return err
}

func (s *Store) infoPath() string {
	return filepath.Join(s.dir, infoFile)
}

func (s *Store) snapshotDir() string {
	return filepath.Join(s.dir, snapshotsDir)
}

func (s *Store) clipDir() string {
	return filepath.Join(s.dir, clipsDir)
}

func mkdirAll(dirs ...string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, defaultDirPerm); err != nil {
			return err
		}
	}

	return nil
}
