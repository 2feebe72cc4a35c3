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

	apiapp "github.com/afyakit/pharmacy-api-server/internal/app/api"
	payactivities "github.com/afyakit/pharmacy-api-server/internal/durable/temporal/activities/payments"
	payworkflows "github.com/afyakit/pharmacy-api-server/internal/durable/temporal/workflows/payments"
	platformobservability "github.com/afyakit/pharmacy-api-server/internal/platform/observability"
	platformpostgres "github.com/afyakit/pharmacy-api-server/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "pharmacy-worker"

	cfg, err := apiapp.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
		LogLevel:     cfg.SlogLevel(),
	})
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

	db, cleanupDB := platformpostgres.MaybeConnect(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()

	deps := apiapp.BuildServices(cfg, db, logger, instruments)
	activities := payactivities.NewActivities(deps.Orders)

	temporalClient, err := apiapp.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, payworkflows.MpesaPaymentTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(payworkflows.MpesaPaymentWorkflow, workflow.RegisterOptions{Name: payworkflows.MpesaPaymentWorkflowName})
	w.RegisterActivityWithOptions(activities.InitiateMpesa, activity.RegisterOptions{Name: payactivities.InitiateMpesaActivityName})
	w.RegisterActivityWithOptions(activities.PollMpesa, activity.RegisterOptions{Name: payactivities.PollMpesaActivityName})
	w.RegisterActivityWithOptions(activities.ResolveTimeout, activity.RegisterOptions{Name: payactivities.ResolveTimeoutActivityName})
	w.RegisterActivityWithOptions(activities.LoadOrder, activity.RegisterOptions{Name: payactivities.LoadOrderActivityName})

	logger.Info("worker listening",
		slog.String("taskQueue", payworkflows.MpesaPaymentTaskQueue),
		slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
