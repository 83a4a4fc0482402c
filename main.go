package main

import (
	"os"

	"github.com/Eursukkul/event-registration-service/config"
	"github.com/Eursukkul/event-registration-service/internal/consumer"
	"github.com/Eursukkul/event-registration-service/internal/handler"
	"github.com/Eursukkul/event-registration-service/internal/middleware"
	"github.com/Eursukkul/event-registration-service/internal/repository"
	"github.com/Eursukkul/event-registration-service/internal/service"
	"github.com/Eursukkul/event-registration-service/pkg/badge"
	"github.com/Eursukkul/event-registration-service/pkg/database"
	"github.com/Eursukkul/event-registration-service/pkg/mailer"
	"github.com/Eursukkul/event-registration-service/pkg/payment"
	"github.com/Eursukkul/event-registration-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	// RabbitMQ: publisher for ticket notifications, consumer for mail dispatch
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open RabbitMQ consumer")
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start consuming")
	}

	// Collaborators
	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	payments := payment.NewHTTPClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey)
	badges := badge.NewHTMLRenderer()

	// Repositories
	registrantRepo := repository.NewRegistrantRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	couponRepo := repository.NewCouponRepository(db)

	// Notification pipeline
	consumer.NewNotificationConsumer(registrantRepo, mail, badges, logger).Start(msgs)

	// Services
	allocatorSvc := service.NewAllocatorService(registrantRepo, publisher, cfg.FieldWhitelist, logger)
	couponSvc := service.NewCouponService(couponRepo, logger)
	upgradeSvc := service.NewUpgradeService(registrantRepo, ticketRepo, couponSvc, payments, publisher, logger)
	resolverSvc := service.NewResolverService(registrantRepo, ticketRepo, logger)
	otpSvc := service.NewOTPService(rdb, registrantRepo, mail, logger)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			logger.Info().Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).Msg("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "event-registration-service"})
	})

	handler.NewRegistrationHandler(allocatorSvc).RegisterRoutes(e)
	handler.NewTicketHandler(upgradeSvc, resolverSvc, badges).RegisterRoutes(e)
	handler.NewCouponHandler(couponSvc).RegisterRoutes(e)
	handler.NewOTPHandler(otpSvc).RegisterRoutes(e)

	logger.Info().Str("port", cfg.ServerPort).Msg("event registration service starting")
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
