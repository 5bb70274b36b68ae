package main

import (
	"innkeeper/internal/bookings/handler"
	"innkeeper/internal/bookings/notify"
	"innkeeper/internal/bookings/repository"
	"innkeeper/internal/bookings/service"
	"innkeeper/internal/bookings/validator"
	"innkeeper/pkg/app"
	"innkeeper/pkg/client"
	"innkeeper/pkg/config"
	"innkeeper/pkg/kafka"
	kafka_config "innkeeper/pkg/kafka/config"
	kafkamiddleware "innkeeper/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	producer := initProducer(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	bookingService := initServices(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.BookingEventsTopic, kafkaCfg.BookingEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log, cfg.MaxStayDays, cfg.AdultAgeThreshold)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	saleOrders := client.NewSaleOrderClient(cfg.SaleOrderBaseURL, cfg.SaleOrderTimeout)
	notifier := notify.NewKafkaNotifier(producer, cfg.Log)

	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		saleOrders,
		notifier,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
