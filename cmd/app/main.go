package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/bootstrap"
	"github.com/Domenick1991/carrental/internal/cache"
	"github.com/Domenick1991/carrental/internal/catalog"
	"github.com/Domenick1991/carrental/internal/email"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/identity"
	"github.com/Domenick1991/carrental/internal/service/otp"
	"github.com/Domenick1991/carrental/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	zapLogger := logger.New()
	defer zapLogger.Sync()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}

	otpStore := cache.NewRedisOTPStore(cfg.Redis)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	sender := email.NewSender(cfg.Email)
	fleet := catalog.NewClient(cfg.Catalog)

	bookingRepo := repository.NewBookingRepository(store)
	userRepo := repository.NewUserRepository(store)
	sessionRepo := repository.NewSessionRepository(store)

	identityService := identity.NewIdentityService(userRepo, sessionRepo)
	otpService := otp.NewOTPService(
		otpStore,
		bookingRepo,
		sender,
		time.Duration(cfg.OTP.TTLMinutes)*time.Minute,
		time.Duration(cfg.OTP.ResendCooldownSeconds)*time.Second,
	)
	bookingService := booking.NewBookingService(
		bookingRepo,
		producer,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	deps := bootstrap.Deps{
		Identity: identityService,
		OTP:      otpService,
		Booking:  bookingService,
		Catalog:  api.Catalog(fleet),
	}

	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
