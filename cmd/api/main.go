package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/lead-management/internal/config"
	"github.com/xavierca1/lead-management/internal/infra/database"
	"github.com/xavierca1/lead-management/internal/infra/http/handlers"
	"github.com/xavierca1/lead-management/internal/infra/integration/kommo"
	"github.com/xavierca1/lead-management/internal/infra/mail"
	"github.com/xavierca1/lead-management/internal/infra/queue"
	"github.com/xavierca1/lead-management/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.App) error {
	// 1. Database
	db, err := database.NewDBConnection(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	prometheus.MustRegister(collectors.NewDBStatsCollector(sqlDB, "leads"))

	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
		slog.Info("database schema up to date")
	}

	// 2. Broker and notification worker
	var publisher usecase.EventPublisher = queue.NoopProducer{}
	var amqpConn *amqp091.Connection
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()

		publisher = queue.NewProducer(rabbitMQ.Ch)
		amqpConn = rabbitMQ.Conn

		consumeCh, err := rabbitMQ.Conn.Channel()
		if err != nil {
			return err
		}
		worker := queue.NewWorker(consumeCh, newNotifier(cfg))
		go func() {
			if err := worker.Start(ctx, queue.QueueName); err != nil {
				slog.Error("notification worker stopped", "error", err)
			}
		}()
	} else {
		slog.Warn("AMQP_URL not set, entity events are disabled")
	}

	// 3. Repositories and services
	leadRepo := database.NewLeadRepository(db)
	interestRepo := database.NewInterestRepository(db)
	tx := database.NewTransactor(db)

	leadService := usecase.NewLeadService(leadRepo, tx, publisher)
	interestService := usecase.NewInterestService(interestRepo, leadRepo, tx, publisher)

	// 4. HTTP
	alerts := handlers.Alerts{AppName: cfg.AppName}
	router := handlers.NewRouter(handlers.RouterConfig{
		Leads:          handlers.NewLeadHandler(leadService, alerts),
		Interests:      handlers.NewInterestHandler(interestService, alerts),
		Health:         handlers.NewHealthHandler(sqlDB, amqpConn),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestLogging: true,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.HTTPAddr, "app", cfg.AppName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func newNotifier(cfg config.App) queue.LeadNotifier {
	var notifiers queue.Notifiers
	if cfg.MailEnabled() {
		notifiers = append(notifiers, mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass,
			cfg.MailFrom, cfg.SalesInbox, cfg.PublicURL))
	}
	if cfg.CRMEnabled() {
		notifiers = append(notifiers, kommo.NewClient(cfg.KommoAPIToken, cfg.KommoBaseURL))
	}
	if len(notifiers) == 0 {
		slog.Warn("no notifier configured, new leads are only logged")
		return mail.LogNotifier{}
	}
	return notifiers
}
