// Package webdav exports the archive directory on its own port so saved
// snapshots and clips can be pulled off the device with any WebDAV
// client. The export toggles at runtime from the HTTP API.
package webdav

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/webdav"

	"camview/pkg/utils"
)

type Server struct {
	mu     sync.Mutex
	parent context.Context
	cancel context.CancelFunc
	addr   string
	dir    string
}

func New(ctx context.Context, addr, dir string) *Server {
	return &Server{
		parent: ctx,
		addr:   addr,
		dir:    dir,
	}
}

// Start is a no-op when the export is already running. Stop and Start
// may be alternated freely.
func (s *Server) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	serve(ctx, s.addr, s.dir)
}

func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancel != nil
}

func handler(dir string) *webdav.Handler {
	logger := utils.GetLogger()

	return &webdav.Handler{
		FileSystem: webdav.Dir(dir),
		LockSystem: webdav.NewMemLS(),
		Logger: func(r *http.Request, err error) {
			if err != nil {
				logger.Errorf("WEBDAV [%s]: %s, err: %s", r.Method, r.URL, err)
			}
		},
	}
}

func serve(ctx context.Context, addr, dir string) {
	logger := utils.GetLogger()

	svr := &http.Server{
		Addr:    addr,
		Handler: handler(dir),
	}

	go func() {
		if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("webdav server err: %s", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svr.Shutdown(shutCtx); err != nil {
			logger.Errorf("shutdown webdav server err: %s", err)
		}
	}()
}
