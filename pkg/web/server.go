package web

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/biopass/biopass/pkg/logger"
)

// Config configures the HTTP listener. WriteTimeout defaults to zero because
// /pass/events holds its response open for the whole session.
type Config struct {
	Addr            string        `env:"BIOPASS_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"BIOPASS_HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"BIOPASS_HTTP_WRITE_TIMEOUT" envDefault:"0s"`
	IdleTimeout     time.Duration `env:"BIOPASS_HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"BIOPASS_HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Serve listens on cfg.Addr and blocks until ctx is done, then shuts down
// gracefully within cfg.ShutdownTimeout.
func Serve(ctx context.Context, cfg Config, handler http.Handler, log *slog.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	return ServeListener(ctx, ln, cfg, handler, log)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, ln net.Listener, cfg Config, handler http.Handler, log *slog.Logger) error {
	if log == nil {
		log = logger.Discard()
	}
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	// Streams watch the request context; cancelling the base context on
	// shutdown lets them return so Shutdown can finish.
	baseCtx, cancelBase := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelBase()

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))

	var runErr error
	select {
	case <-ctx.Done():
		shutdownTimeout := cfg.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = 5 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			_ = srv.Close()
			log.ErrorContext(ctx, "http server shutdown failed", logger.Error(err))
			return errors.Join(ErrShutdown, err)
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	log.InfoContext(ctx, "http server stopped")
	return nil
}
