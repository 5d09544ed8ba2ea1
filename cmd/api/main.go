package main

import (
	"context"
	"time"

	bookinghandler "sofcar/internal/bookings/handler"
	bookingrepo "sofcar/internal/bookings/repository"
	bookingservice "sofcar/internal/bookings/service"
	bookingvalidator "sofcar/internal/bookings/validator"
	carhandler "sofcar/internal/cars/handler"
	carrepo "sofcar/internal/cars/repository"
	carservice "sofcar/internal/cars/service"
	carvalidator "sofcar/internal/cars/validator"
	contacthandler "sofcar/internal/contact/handler"
	contactservice "sofcar/internal/contact/service"
	"sofcar/pkg/app"
	"sofcar/pkg/config"
	"sofcar/pkg/kafka"
	kafka_config "sofcar/pkg/kafka/config"
	"sofcar/pkg/notify"
	"sofcar/pkg/ratelimit"
)

const ServiceName = "sofcar-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting SofCar reservation API")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := bookingrepo.EnsureLockIndexes(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to create lock indexes", "error", err)
	}
	cancel()

	limiter := ratelimit.NewFixedWindowLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	notifier := initNotifier(cfg)

	carRepository := carrepo.NewMongoCarRepository(cfg)
	bookingRepository := bookingrepo.NewMongoBookingRepository(cfg)

	carService := carservice.NewCarService(
		carRepository,
		bookingRepository,
		carvalidator.NewCarValidator(cfg.Log),
		cfg,
	)

	bookingService := bookingservice.NewBookingService(
		bookingRepository,
		carService,
		bookingrepo.NewMongoCarLocker(cfg),
		limiter,
		notifier,
		bookingvalidator.NewBookingValidator(cfg, cfg.Log),
		cfg,
	)

	contactService := contactservice.NewContactService(notifier, limiter, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(limiter,
		carhandler.NewCarHandler(carService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		contacthandler.NewContactHandler(contactService, cfg.Log),
	)
	serverApp.Run()
}

// initNotifier builds the Kafka-backed notifier, falling back to a no-op
// when the producer cannot be constructed so the API still serves bookings.
func initNotifier(cfg *config.Config) notify.Notifier {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.NotifyTopic, cfg.NotifyDLQTopic)
	if err != nil {
		cfg.Log.Error("Failed to initialize Kafka producer, notifications disabled", "error", err)
		return notify.NewNoopNotifier()
	}

	cfg.Log.Info("Kafka notifier initialized",
		"topic", cfg.NotifyTopic,
		"dlq_topic", cfg.NotifyDLQTopic,
	)
	return notify.NewKafkaNotifier(producer)
}
