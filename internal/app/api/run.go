package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	auditmemory "github.com/afyakit/pharmacy-api-server/internal/domains/audit/adapters/memory"
	auditpostgres "github.com/afyakit/pharmacy-api-server/internal/domains/audit/adapters/persistence/postgres"
	auditapp "github.com/afyakit/pharmacy-api-server/internal/domains/audit/application"
	auditports "github.com/afyakit/pharmacy-api-server/internal/domains/audit/ports"

	notifmemory "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/adapters/memory"
	notifpostgres "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/adapters/persistence/postgres"
	notifsimulated "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/adapters/simulated"
	notifapp "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/application"
	notifports "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/ports"

	ordersauditlog "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/auditlog"
	ordersmemory "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/memory"
	ordersnotify "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/notify"
	ordersobs "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/afyakit/pharmacy-api-server/internal/domains/orders/application"
	ordersports "github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"

	paymock "github.com/afyakit/pharmacy-api-server/internal/domains/payments/adapters/mock"

	prescauditlog "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/auditlog"
	prescmemory "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/memory"
	prescnotify "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/notify"
	prescorderdir "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/orderdir"
	prescpostgres "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/persistence/postgres"
	prescapp "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/application"
	prescports "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"

	"github.com/afyakit/pharmacy-api-server/internal/platform/metrics"
	platformobservability "github.com/afyakit/pharmacy-api-server/internal/platform/observability"
	platformpostgres "github.com/afyakit/pharmacy-api-server/internal/platform/postgres"
	httpapi "github.com/afyakit/pharmacy-api-server/internal/transport/http"
)

// ServiceName identifies the API process in telemetry.
const ServiceName = "pharmacy-api"

// Run boots the pharmacy HTTP API with observability, repositories, the
// payment orchestrator, and notification/audit side effects wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Config{
		ServiceName:  ServiceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
		LogLevel:     cfg.SlogLevel(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
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

	metrics.Register(nil)

	deps := BuildServices(cfg, db, logger, instruments)

	var orchestrator ordersports.PaymentOrchestrator = ordersworkflows.NewInlinePaymentOrchestrator(deps.Orders)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, running payment orchestration inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = ordersworkflows.NewTemporalPaymentOrchestrator(temporalClient)
		logger.Info("Temporal payment workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := httpapi.ApiHandleFunctions{
		OrdersAPI:        httpapi.NewOrdersAPI(deps.Orders),
		PaymentsAPI:      httpapi.NewPaymentsAPI(deps.Orders, orchestrator),
		PrescriptionsAPI: httpapi.NewPrescriptionsAPI(deps.Prescriptions),
		AuditAPI:         httpapi.NewAuditAPI(deps.Audit),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(ServiceName))
	if cfg.JWTSecret != "" {
		engine.Use(httpapi.ActorMiddleware(cfg.JWTSecret))
	} else {
		logger.Warn("JWT_SECRET not set, all requests are anonymous")
	}
	router := httpapi.NewRouterWithGinEngine(engine, handlers)

	addr := ":" + cfg.Port
	logger.Info("pharmacy API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("pharmacy API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Services bundles the wired application services shared by the API and the
// Temporal worker.
type Services struct {
	Orders        ordersports.Service
	Prescriptions prescports.Service
	Notifications notifports.Dispatcher
	Audit         *auditapp.Recorder
}

// BuildServices wires repositories, the payment gateway, and side-effect
// adapters into the application services. A nil db selects the in-memory
// adapters.
func BuildServices(cfg Config, db *gorm.DB, logger *slog.Logger, instruments *platformobservability.Instruments) Services {
	var (
		ordersRepo ordersports.Repository
		prescRepo  prescports.Repository
		notifRepo  notifports.Repository
		auditRepo  auditports.Repository
	)
	if db != nil {
		ordersRepo = orderspostgres.NewRepository(db)
		prescRepo = prescpostgres.NewRepository(db)
		notifRepo = notifpostgres.NewRepository(db)
		auditRepo = auditpostgres.NewRepository(db)
	} else {
		ordersRepo = ordersmemory.NewRepository()
		prescRepo = prescmemory.NewRepository()
		notifRepo = notifmemory.NewRepository()
		auditRepo = auditmemory.NewRepository()
	}

	dispatcher := notifapp.NewDispatcher(
		notifRepo,
		notifsimulated.New(cfg.NotificationDeliveryRate, 50*time.Millisecond),
		notifapp.WithLogger(logger),
	)
	recorder := auditapp.NewRecorder(auditRepo)

	gateway := paymock.New(paymock.Config{
		InitiateSuccessRate: cfg.MpesaInitiateSuccessRate,
		MpesaCompletionRate: cfg.MpesaCompletionRate,
		IntentSuccessRate:   cfg.CardIntentSuccessRate,
		ConfirmSuccessRate:  cfg.CardConfirmSuccessRate,
		Latency:             150 * time.Millisecond,
		Currency:            "KES",
	})

	ordersCore := ordersapp.NewService(
		ordersRepo,
		gateway,
		ordersnotify.New(dispatcher),
		ordersauditlog.New(recorder),
		ordersapp.WithLogger(logger),
	)
	ordersService := ordersobs.New(
		ordersCore,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	prescService := prescapp.NewService(
		prescRepo,
		prescorderdir.New(ordersRepo),
		prescnotify.New(dispatcher),
		prescauditlog.New(recorder),
		prescapp.WithLogger(logger),
	)

	return Services{
		Orders:        ordersService,
		Prescriptions: prescService,
		Notifications: dispatcher,
		Audit:         recorder,
	}
}

// ConnectTemporalClient dials the configured Temporal cluster with tracing
// and structured logging attached.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
