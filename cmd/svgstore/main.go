package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/svgstore/internal/images"
	"github.com/dmitrymomot/svgstore/pkg/clientip"
	"github.com/dmitrymomot/svgstore/pkg/config"
	"github.com/dmitrymomot/svgstore/pkg/httpserver"
	"github.com/dmitrymomot/svgstore/pkg/logger"
	"github.com/dmitrymomot/svgstore/pkg/requestid"
)

const serviceName = "svgstore"

type appConfig struct {
	Log    logger.Config
	HTTP   httpserver.Config
	Images images.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load[appConfig]()
	if err != nil {
		return err
	}
	if err := cfg.Images.Validate(); err != nil {
		return err
	}

	log, err := logger.NewFromConfig(cfg.Log, serviceName,
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	store, err := images.NewStorage(ctx, cfg.Images)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	router := images.NewRouter(store, cfg.Images, log)

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(ctx context.Context, addr string) {
			log.InfoContext(ctx, "svg images service started",
				slog.String("url", "http://"+addr),
				slog.String("storage_driver", cfg.Images.StorageDriver),
				slog.String("storage", images.Location(cfg.Images, store)),
				slog.Int64("max_upload_size", cfg.Images.MaxUploadSize),
			)
			for _, e := range images.Endpoints(cfg.Images) {
				log.InfoContext(ctx, "endpoint", slog.String("route", e))
			}
		}),
		httpserver.WithStopHook(func(ctx context.Context) {
			log.InfoContext(ctx, "svg images service stopped")
		}),
	)

	return srv.Run(ctx, router)
}
