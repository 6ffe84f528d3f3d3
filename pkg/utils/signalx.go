package utils

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func WatchSignal() {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGTERM, syscall.SIGINT)
	<-signalCh
}

// ListenAndServe runs the handler on addr until SIGTERM/SIGINT, then
// gives in-flight requests 5s to finish.
func ListenAndServe(h http.Handler, addr string) {
	srv := &http.Server{
		Addr:    addr,
		Handler: h,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %s", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warnf("shutdown: %s", err)
		}
		logger.Info("server shutdown")
		cancel()
	}()

	WatchSignal()
}
