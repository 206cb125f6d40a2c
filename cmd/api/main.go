package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/call-screener/internal/config"
	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/infra/cache"
	"github.com/xavierca1/call-screener/internal/infra/database"
	"github.com/xavierca1/call-screener/internal/infra/http/handlers"
	"github.com/xavierca1/call-screener/internal/infra/http/middleware"
	"github.com/xavierca1/call-screener/internal/infra/integration/callerapi"
	"github.com/xavierca1/call-screener/internal/infra/mail"
	"github.com/xavierca1/call-screener/internal/infra/queue"
	"github.com/xavierca1/call-screener/internal/infra/worker"
	"github.com/xavierca1/call-screener/internal/usecase"
	"github.com/xavierca1/call-screener/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel).With("service", "call-screener", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("call screener failed", "error", err)
		os.Exit(1)
	}
	logger.Info("call screener stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	// 1. Caller store
	var (
		repo entity.CallerRepository
		db   *sql.DB
	)
	switch cfg.StoreBackend {
	case config.StoreAPI:
		if cfg.CallerAPIURL == "" {
			return errors.New("CALLER_API_URL is required when STORE_BACKEND=api")
		}
		repo = callerapi.NewClient(cfg.CallerAPIURL, cfg.CallerAPIToken, cfg.APITimeout).
			WithErrorRecorder(middleware.PrometheusRecorder{}).
			WithLogger(logger.With("component", "caller_api"))
	case config.StorePostgres:
		var err error
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database unavailable: %w", err)
		}
		defer db.Close()
		repo = database.NewCallerRepository(db)
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	// 2. Roster cache, kept warm by the poller
	var (
		rosterCache usecase.RosterCache
		redisCache  *cache.RosterCache
		poller      *worker.RosterPoller
	)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer client.Close()
		redisCache = cache.NewRosterCache(client, 3*cfg.PollInterval)
		rosterCache = redisCache
		poller = worker.NewRosterPoller(repo, redisCache, cfg.PollInterval, logger)
	}

	// 3. Host board events
	var (
		producer   usecase.QueueProducerInterface
		amqpConn   *amqp.Connection
		hostWorker *queue.Worker
	)
	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		logger.Warn("rabbitmq unavailable, host board events disabled", "error", err)
	} else {
		defer rabbitMQ.Close()
		amqpConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Ch)
		hostWorker = queue.NewWorker(rabbitMQ.Ch, hostNotifier(cfg, logger), logger)
	}

	// Background work stops before the connections above are closed.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if poller != nil {
		go poller.Start(ctx)
	}
	if hostWorker != nil {
		go func() {
			if err := hostWorker.Start(ctx, queue.QueueName); err != nil {
				logger.Error("host board worker stopped", "error", err)
			}
		}()
	}

	// 4. UseCases
	scale := entity.ParseScale(cfg.PriorityScale)
	metrics := middleware.PrometheusRecorder{}

	submitUC := usecase.NewSubmitScreeningUseCase(repo, rosterCache, producer, metrics, scale, logger)
	updateUC := usecase.NewUpdateScreeningUseCase(repo, rosterCache, producer, metrics, scale, logger)
	statusUC := usecase.NewChangeStatusUseCase(repo, rosterCache, producer, metrics, logger)
	rosterUC := usecase.NewRosterUseCase(repo, rosterCache, scale, logger)

	// 5. Handlers
	callerHandler := handlers.NewCallerHandler(submitUC, updateUC, statusUC, rosterUC, logger)
	healthHandler := handlers.NewHealthHandler(db, amqpConn).WithCallerAPI(cfg.CallerAPIURL)
	if redisCache != nil {
		healthHandler.WithRedis(redisCache)
	}

	submitLimiter := middleware.NewRateLimiter(cfg.SubmitRateLimit, time.Minute).TrustProxyHeaders(cfg.TrustProxy)
	go sweepEvery(ctx, 10*time.Minute, submitLimiter.Sweep)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	callerHandler.Register(r, submitLimiter.Handler)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("call screener listening", "port", cfg.Port, "store", cfg.StoreBackend, "scale", scale)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func hostNotifier(cfg *config.Config, logger *logging.Logger) queue.HostNotifier {
	if cfg.MailHost == "" || cfg.HostAlertEmail == "" {
		return queue.LogNotifier{Logger: logger}
	}
	sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	return mail.NewHostAlertSender(sender, cfg.HostAlertEmail)
}

func sweepEvery(ctx context.Context, every time.Duration, fn func()) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
