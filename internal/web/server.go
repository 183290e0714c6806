package web

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"enrichment-dash/internal/infra/logx"
)

const (
	defaultShutdownTimeout = 5 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// Routes mounts the API behind the rate limiter and, if gatherer is set,
// the Prometheus exposition on /metrics.
func Routes(h http.Handler, gatherer prometheus.Gatherer, cl *ClientLimiter) http.Handler {
	mux := http.NewServeMux()
	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	mux.Handle("/", RateLimit(cl, h))
	return mux
}

// Server runs an HTTP server until its context is cancelled.
type Server struct {
	Addr            string
	Handler         http.Handler
	ShutdownTimeout time.Duration
	// LogSink receives http.Server errors. Nil follows the logx output.
	LogSink io.Writer
}

// Run listens on Addr and serves until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", s.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          log.New(logx.StdlogWriter(logx.LevelError, s.LogSink), "", 0),
	}
	timeout := s.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logx.Infof("listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "http server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logx.Infof("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
