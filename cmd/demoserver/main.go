// Command demoserver is a small HTTP service that logs every request
// through masklog. It shows how a host application builds the logger,
// installs it as the default and binds requests into their contexts.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/philipp01105/masklog/logger"
	"github.com/philipp01105/masklog/reqctx"
)

func main() {
	os.Exit(start(os.Args[1:], os.Stderr, zap.NewProduction))
}

// start parses args, builds the diagnostics logger with newDiag and runs
// the server. It returns the process exit code.
func start(args []string, stderr io.Writer, newDiag func(...zap.Option) (*zap.Logger, error)) int {
	fs := flag.NewFlagSet("demoserver", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", ":8080", "listen address")
	level := fs.String("level", "ALL", "active level mask, names joined by '|' or a number")
	file := fs.String("file", logger.DefaultFilePath, "base log file path")
	maxSize := fs.Int64("max-size", 64<<20, "delete a log file once it grows past this many bytes (0 = never)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	diag, err := newDiag()
	if err != nil {
		fmt.Fprintf(stderr, "demoserver: build diagnostics logger: %v\n", err)
		return 1
	}
	defer diag.Sync()

	if err := run(*addr, *level, *file, *maxSize, diag); err != nil {
		diag.Error("demoserver stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(addr, levelFlag, file string, maxSize int64, diag *zap.Logger) error {
	level, err := logger.ParseLevel(levelFlag)
	if err != nil {
		return err
	}

	log, err := logger.NewBuilder().
		WithLevel(level).
		WithFilePath(file).
		WithMaxFileSize(maxSize).
		WithDiagnostics(diag.Named("masklog")).
		Build()
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		diag.Info("listening", zap.String("addr", addr), zap.String("file", file), zap.Stringer("level", level))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter wires the request context middleware and the demo routes
func newRouter(log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(reqctx.Middleware)
	r.Use(accessLog(log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/stat", func(w http.ResponseWriter, req *http.Request) {
		snap := log.Stats()
		_, _ = log.Statistic(req.Context(), "stat",
			logger.Int64("written_bytes", int64(snap.WrittenBytes)),
			logger.Int64("rotated", int64(snap.RotatedTotal)),
			logger.Int64("failed", int64(snap.FailedTotal)),
		)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	})

	return r
}

// accessLog writes one NOTICE per request, tagged with a fresh log id
func accessLog(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			id := log.CurrentLogID()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)

			// storage failures already reach the diagnostics logger
			_, _ = log.Notice(req.Context(), "request served",
				logger.WithLogID(id),
				logger.String("method", req.Method),
				logger.Int("status", ww.Status()),
				logger.Duration("elapsed", time.Since(start)),
			)
		})
	}
}
