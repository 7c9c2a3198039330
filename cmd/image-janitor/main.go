package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/food-order-api/internal/app/bootstrap"
	menuworkflows "github.com/Apurer/food-order-api/internal/domains/menus/adapters/workflows"
	menuports "github.com/Apurer/food-order-api/internal/domains/menus/ports"
	platformobservability "github.com/Apurer/food-order-api/internal/platform/observability"
)

// image-janitor removes image files no menu references. It runs the reconciliation
// workflow on Temporal when reachable and purges inline otherwise.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	instruments := &platformobservability.Instruments{Logger: logger}

	deps, cleanup, err := bootstrap.Build(ctx, cfg, instruments, bootstrap.Options{RequirePostgres: true})
	if err != nil {
		log.Fatalf("cannot purge images: %v", err)
	}
	defer cleanup()

	var reconciler menuports.ImageReconciler = menuworkflows.NewInlineImageReconciler(deps.MenuService())
	temporalClient, err := bootstrap.DialTemporal(cfg, instruments, "image-janitor")
	switch {
	case err == nil:
		defer temporalClient.Close()
		reconciler = menuworkflows.NewTemporalImageReconciler(temporalClient)
	case errors.Is(err, bootstrap.ErrTemporalDisabled):
		logger.Info("Temporal disabled, purging inline")
	default:
		logger.Warn("Temporal unavailable, purging inline", slog.String("error", err.Error()))
	}

	result, err := reconciler.ReconcileImages(ctx, cfg.ImageOrphanGrace)
	if err != nil {
		log.Fatalf("failed to purge orphan images: %v", err)
	}
	logger.Info("orphan image purge completed", slog.Int("removed", len(result.Removed)), slog.Duration("grace", cfg.ImageOrphanGrace))
}
