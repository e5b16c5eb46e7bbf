// Command biopass issues ephemeral, signed identity passes.
//
// By default it serves the web UI and JSON API; with --terminal it prints a
// single pass as a QR code and counts it down in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/biopass/biopass/pkg/config"
	"github.com/biopass/biopass/pkg/lifecycle"
	"github.com/biopass/biopass/pkg/logger"
	"github.com/biopass/biopass/pkg/store"
	"github.com/biopass/biopass/pkg/web"
)

type appConfig struct {
	Log       logger.Config
	Lifecycle lifecycle.Config
	Store     store.Config
	HTTP      web.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "biopass: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("biopass", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	addr := flags.String("addr", "", "listen address, overrides BIOPASS_HTTP_ADDR")
	terminal := flags.Bool("terminal", false, "print one pass in the terminal instead of serving HTTP")
	envFile := flags.String("env-file", "", "load variables from this .env file")
	storeDriver := flags.String("store", "", "session store driver, overrides BIOPASS_STORE")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flags.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	var loadOpts []config.Option
	if *envFile != "" {
		loadOpts = append(loadOpts, config.WithEnvFiles(*envFile))
	}
	cfg, err := config.Load[appConfig](loadOpts...)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *storeDriver != "" {
		cfg.Store.Driver = *storeDriver
	}

	log := logger.New(
		logger.WithConfig(cfg.Log),
		logger.WithOutput(stderr),
		logger.WithContextExtractors(web.RequestIDExtractor),
	)
	logger.SetAsDefault(log)

	backend, err := store.Open(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("closing store", logger.Error(err))
		}
	}()

	ctrl, err := lifecycle.New(
		lifecycle.WithConfig(cfg.Lifecycle),
		lifecycle.WithStore(backend),
		lifecycle.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	// A slot left by a crashed run cannot be resumed; its key is gone.
	if _, err := ctrl.Recover(ctx); err != nil {
		log.WarnContext(ctx, "could not clear previous session", logger.Error(err))
	}

	if *terminal {
		return runTerminal(ctx, ctrl, stdout)
	}

	router := web.NewRouter(ctrl,
		web.WithLogger(log),
		web.WithHealthCheck(store.Healthcheck(backend)),
	)
	return web.Serve(ctx, cfg.HTTP, router, log)
}
