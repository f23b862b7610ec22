// API server entry point for ScholarAI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/ScholarAI/internal/app"
	"github.com/turtacn/ScholarAI/internal/config"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/ScholarAI/internal/interfaces/http"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	watch := flag.Bool("watch", true, "reload rate limits when the config file changes")
	flag.Parse()

	if err := run(*configPath, *port, *watch); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, port int, watch bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	logger, err := logging.NewLogger(cfg.Log.Logging())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)
	logger = logger.Named("scholarai")

	logger.Info("Starting ScholarAI API server",
		logging.String("version", Version),
		logging.String("commit", GitCommit),
		logging.String("addr", cfg.Server.Addr()),
		logging.String("assistant_provider", cfg.Assistant.Provider))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := app.New(ctx, cfg, app.Deps{Logger: logger})
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Start(ctx); err != nil {
		return err
	}

	api := httpserver.NewAPI(st, Version, nil)
	defer api.Close()

	if watch && configPath != "" {
		err := config.Watch(configPath,
			func(next *config.Config) {
				logger.Info("configuration reloaded", logging.String("path", configPath))
				api.ApplyConfig(next)
			},
			func(err error) {
				logger.Warn("configuration reload rejected", logging.Err(err))
			})
		if err != nil {
			logger.Warn("config watch unavailable", logging.Err(err))
		}
	}

	srv := httpserver.NewServer(cfg.Server, api.Handler, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", logging.Err(err))
		return err
	}
	logger.Info("ScholarAI API server stopped")
	return nil
}

//Personal.AI order the ending
