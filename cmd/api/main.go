package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/igabay/booking-api/internal/config"
	"github.com/igabay/booking-api/internal/handler"
	appointmentHandler "github.com/igabay/booking-api/internal/handler/appointment"
	clinicHandler "github.com/igabay/booking-api/internal/handler/clinic"
	notificationHandler "github.com/igabay/booking-api/internal/handler/notification"
	patientHandler "github.com/igabay/booking-api/internal/handler/patient"
	paymentHandler "github.com/igabay/booking-api/internal/handler/payment"
	"github.com/igabay/booking-api/internal/middleware"
	"github.com/igabay/booking-api/internal/repository/postgres"
	"github.com/igabay/booking-api/internal/router"
	bookingService "github.com/igabay/booking-api/internal/service/booking"
	clinicService "github.com/igabay/booking-api/internal/service/clinic"
	notificationService "github.com/igabay/booking-api/internal/service/notification"
	patientService "github.com/igabay/booking-api/internal/service/patient"
	paymentService "github.com/igabay/booking-api/internal/service/payment"
	schedulingService "github.com/igabay/booking-api/internal/service/scheduling"
	"github.com/igabay/booking-api/pkg/auth"
	redisbroker "github.com/igabay/booking-api/pkg/messaging/redis"
	"github.com/igabay/booking-api/pkg/poller"
	"github.com/igabay/booking-api/pkg/redislock"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis URL")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	brokerLogger := log.With().Str("component", "broker").Logger()
	broker := redisbroker.NewRedisBrokerWithClient(redisClient, &brokerLogger)
	defer broker.Close()

	locker := redislock.NewSlotLocker(redisClient, cfg.Redis.SlotHoldTTL)

	// Repositories
	clinicRepo := postgres.NewClinicRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Services
	clinicSvc := clinicService.NewService(clinicRepo)
	patientSvc := patientService.NewService(patientRepo)
	schedulingSvc := schedulingService.NewService(appointmentRepo)
	notificationSvc := notificationService.NewService(notificationRepo, broker, cfg.Notification.Channel)

	fees := bookingService.FeeSchedule{
		ConsultationFee: cfg.Booking.ConsultationFee,
		BookingFee:      cfg.Booking.BookingFee,
		Currency:        cfg.Booking.Currency,
	}
	bookingSvc := bookingService.NewService(appointmentRepo, patientRepo, clinicSvc, notificationSvc, locker, fees)

	gateway := paymentService.NewPayMongoGateway(paymentService.PayMongoConfig{
		BaseURL:   cfg.Payment.BaseURL,
		SecretKey: cfg.Payment.SecretKey,
	})
	paymentSvc := paymentService.NewService(gateway, poller.New(poller.Config{
		Interval:    cfg.Payment.PollInterval,
		MaxAttempts: cfg.Payment.PollAttempts,
	}))

	// Middleware and handlers
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	h := handler.NewHandler(db)
	clinicH := clinicHandler.NewHandler(clinicSvc, schedulingSvc)
	appointmentH := appointmentHandler.NewHandler(bookingSvc, paymentSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	paymentH := paymentHandler.NewHandler(paymentSvc, fees)
	notificationH := notificationHandler.NewHandler(notificationSvc)

	r := router.NewRouter(
		authMiddleware,
		clinicH,
		appointmentH,
		patientH,
		paymentH,
		notificationH,
		h,
		router.RouterConfig{
			RateLimit:     rate.Limit(cfg.Server.RateLimit),
			RateBurst:     cfg.Server.RateBurst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "booking_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
