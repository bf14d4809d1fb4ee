package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/LocalBizGo/internal/assistant"
	"github.com/utafrali/LocalBizGo/internal/auth"
	"github.com/utafrali/LocalBizGo/internal/config"
	"github.com/utafrali/LocalBizGo/internal/event"
	handler "github.com/utafrali/LocalBizGo/internal/handler/http"
	"github.com/utafrali/LocalBizGo/internal/repository/jsonstore"
	"github.com/utafrali/LocalBizGo/internal/service"
	"github.com/utafrali/LocalBizGo/internal/store"
	"github.com/utafrali/LocalBizGo/pkg/health"
	"github.com/utafrali/LocalBizGo/pkg/httpclient"
	pkgkafka "github.com/utafrali/LocalBizGo/pkg/kafka"
	"github.com/utafrali/LocalBizGo/pkg/middleware"
	"github.com/utafrali/LocalBizGo/pkg/tracing"
)

const serviceName = "localbiz"

// App wires together all dependencies and runs the directory server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	store          *store.Store
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	recordStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Kafka is optional; without it events are dropped.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher
	)
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	eventProducer := event.NewProducer(publisher, logger)

	// Language model client: retries inside the breaker so one logical call
	// counts once against it.
	llmHTTP := httpclient.New(httpclient.Config{
		Timeout:         cfg.LLMTimeout,
		MaxRetries:      cfg.LLMMaxRetries,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 10,
	})
	llmBreaker := httpclient.NewCircuitBreakerClient(llmHTTP, httpclient.DefaultCircuitBreakerConfig("llm"), logger)
	generator, err := assistant.NewLLMGenerator(assistant.Config{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	}, llmBreaker, logger)
	if err != nil {
		_ = recordStore.Close()
		return nil, fmt.Errorf("init assistant: %w", err)
	}
	if cfg.LLMAPIKey == "" {
		logger.Warn("LLM_API_KEY is not set, chat requests will likely fail")
	}

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	categoryRepo := jsonstore.NewCategoryRepository(recordStore)
	businessRepo := jsonstore.NewBusinessRepository(recordStore)
	reviewRepo := jsonstore.NewReviewRepository(recordStore)
	userRepo := jsonstore.NewUserRepository(recordStore)

	services := handler.Services{
		Categories: service.NewCategoryService(categoryRepo, eventProducer, logger),
		Businesses: service.NewBusinessService(businessRepo, categoryRepo, eventProducer, logger),
		Reviews:    service.NewReviewService(reviewRepo, businessRepo, userRepo, eventProducer, logger),
		Users:      service.NewUserService(userRepo, jwtManager, eventProducer, logger),
		Directory:  service.NewDirectoryService(categoryRepo, businessRepo, reviewRepo, userRepo, logger),
		Chat:       service.NewChatService(businessRepo, reviewRepo, generator, logger),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("store", recordStore.Ping)
	if producer != nil {
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(services, jwtManager, healthHandler, logger, corsCfg, handler.AdminSeed{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, cfg.RateLimitConfig())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		store:          recordStore,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("store", a.store.Driver()),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer
// 4. Record store
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("store close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
