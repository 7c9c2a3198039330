package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/food-order-api/internal/app/bootstrap"
	imageactivities "github.com/Apurer/food-order-api/internal/durable/temporal/activities/images"
	imageworkflows "github.com/Apurer/food-order-api/internal/durable/temporal/workflows/images"
	platformobservability "github.com/Apurer/food-order-api/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	const serviceName = "food-order-worker"
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	deps, cleanup, err := bootstrap.Build(ctx, cfg, instruments, bootstrap.Options{RequirePostgres: true})
	if err != nil {
		logger.Error("worker dependencies unavailable", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	activities := imageactivities.NewActivities(deps.MenuService())

	temporalClient, err := bootstrap.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, imageworkflows.OrphanImageTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(imageworkflows.OrphanImageWorkflow, workflow.RegisterOptions{Name: imageworkflows.OrphanImageWorkflowName})
	w.RegisterActivityWithOptions(activities.PurgeOrphanImages, activity.RegisterOptions{Name: imageactivities.PurgeOrphanImagesActivityName})

	logger.Info("worker listening", slog.String("taskQueue", imageworkflows.OrphanImageTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
