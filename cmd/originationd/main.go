package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crediflow/origination/internal/application/usecase"
	"github.com/crediflow/origination/internal/domain/port"
	"github.com/crediflow/origination/internal/domain/service"
	"github.com/crediflow/origination/internal/infrastructure/adapter"
	"github.com/crediflow/origination/internal/infrastructure/config"
	"github.com/crediflow/origination/internal/infrastructure/kafka"
	pgRepo "github.com/crediflow/origination/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/crediflow/origination/internal/presentation/grpc"
	"github.com/crediflow/origination/internal/presentation/rest"
	"github.com/crediflow/origination/pkg/auth"
	pkgkafka "github.com/crediflow/origination/pkg/kafka"
	"github.com/crediflow/origination/pkg/observability"
	pkgpostgres "github.com/crediflow/origination/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   getEnv("LOG_LEVEL", "info"),
		Format:  getEnv("LOG_FORMAT", "json"),
		Service: cfg.ServiceName,
	})

	logger.Info("starting origination-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	appRepo := pgRepo.NewApplicationRepo(pool)
	productRepo := pgRepo.NewProductRepo(pool)
	kafkaProducer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	if err != nil {
		logger.Error("failed to build kafka producer", "error", err)
		os.Exit(1)
	}
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)
	directory := adapter.NewStubApplicantDirectory()
	documents := adapter.NewStubDocumentService()
	references := adapter.NewStubReferenceService()
	clock := port.SystemClock{}

	// Domain services.
	validator := service.NewSubmissionValidator()
	snapshots := service.NewSnapshotBuilder()
	risk := service.NewRiskAssessor()
	negotiator := service.NewCounterOfferNegotiator()

	// Wire use cases.
	ucs := grpcPresentation.HandlerUseCases{
		Create:   usecase.NewCreateApplicationUseCase(appRepo, productRepo, publisher, clock),
		Update:   usecase.NewUpdateLoanTermsUseCase(appRepo, productRepo, clock),
		Submit:   usecase.NewSubmitApplicationUseCase(appRepo, productRepo, publisher, directory, documents, references, validator, snapshots, risk, clock),
		Change:   usecase.NewChangeStatusUseCase(appRepo, publisher, clock),
		Assign:   usecase.NewAssignApplicationUseCase(appRepo, publisher, clock),
		Approve:  usecase.NewApproveApplicationUseCase(appRepo, productRepo, publisher, clock),
		Reject:   usecase.NewRejectApplicationUseCase(appRepo, publisher, clock),
		Cancel:   usecase.NewCancelApplicationUseCase(appRepo, publisher, clock),
		Send:     usecase.NewSendCounterOfferUseCase(appRepo, productRepo, negotiator, publisher, clock),
		Respond:  usecase.NewRespondCounterOfferUseCase(appRepo, publisher, clock),
		Sync:     usecase.NewMarkSyncedUseCase(appRepo, publisher, clock),
		Simulate: usecase.NewSimulateLoanUseCase(),
		Get:      usecase.NewGetApplicationUseCase(appRepo),
		List:     usecase.NewListApplicationsUseCase(appRepo),
		History:  usecase.NewGetStatusHistoryUseCase(appRepo),
	}

	// Core banking sync confirmations move APPROVED applications to SYNCED.
	syncConsumer := kafka.NewSyncConsumer(ucs.Sync, logger)
	confirmations, err := pkgkafka.NewConsumer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	}, cfg.Kafka.SyncTopic, syncConsumer.Handle, logger)
	if err != nil {
		logger.Error("failed to build sync consumer", "error", err)
		os.Exit(1)
	}
	defer confirmations.Close()

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: "crediflow-gateway",
	}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			jwtSecret = "test-e2e-secret" // Match gateway default for E2E tests
		}
		jwtCfg.Secret = jwtSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewOriginationHandler(ucs, logger)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		},
	})
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		if err := confirmations.Start(ctx); err != nil {
			errCh <- fmt.Errorf("sync consumer error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("origination-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
