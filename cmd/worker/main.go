package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/igabay/booking-api/internal/config"
	"github.com/igabay/booking-api/internal/email"
	"github.com/igabay/booking-api/internal/repository/postgres"
	"github.com/igabay/booking-api/internal/worker"
	"github.com/igabay/booking-api/pkg/logger"
)

// workerConfig is read from the environment; the dispatcher runs on hosts
// that have no config file mounted.
type workerConfig struct {
	DatabaseURL  string        `envconfig:"DATABASE_URL" required:"true"`
	HealthPort   int           `envconfig:"HEALTH_PORT" default:"8081"`
	BatchSize    int           `envconfig:"BATCH_SIZE" default:"20"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	RetryDelay   time.Duration `envconfig:"RETRY_DELAY" default:"30s"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`
}

func setupHealthCheck(port int, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			log.Error(err, "health check server failed")
			os.Exit(1)
		}
	}()
}

func main() {
	_ = godotenv.Load()

	var cfg workerConfig
	if err := envconfig.Process("worker", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	workerLogger := logger.NewLogger(&logger.Config{
		Level:  logger.InfoLevel,
		Output: os.Stdout,
	})

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		workerLogger.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	notificationRepo := postgres.NewNotificationRepository(db)
	sender := email.NewSender(config.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	dispatcher := worker.NewDispatcher(notificationRepo, sender, worker.DispatcherConfig{
		BatchSize:    cfg.BatchSize,
		PollInterval: cfg.PollInterval,
		RetryDelay:   cfg.RetryDelay,
	}, workerLogger)

	setupHealthCheck(cfg.HealthPort, workerLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		workerLogger.Info("shutting down...")
		cancel()
	}()

	dispatcher.Start(ctx)
}
