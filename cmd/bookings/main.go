package main

import (
	bookingsevents "bookit/internal/bookings/events"
	bookingshandler "bookit/internal/bookings/handler"
	bookingsrepo "bookit/internal/bookings/repository"
	bookingsservice "bookit/internal/bookings/service"
	bookingsvalidator "bookit/internal/bookings/validator"
	experienceshandler "bookit/internal/experiences/handler"
	experiencesrepo "bookit/internal/experiences/repository"
	experiencesservice "bookit/internal/experiences/service"
	"bookit/internal/promos"
	"bookit/pkg/app"
	"bookit/pkg/config"
	"bookit/pkg/kafka"
	kafka_config "bookit/pkg/kafka/config"
	kafka_middleware "bookit/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	publisher, closePublisher := initPublisher(cfg)
	defer closePublisher()

	experienceRepo := experiencesrepo.NewMongoExperienceRepository(cfg)
	experienceService := experiencesservice.NewExperienceService(experienceRepo, cfg.Log)

	catalog := promos.NewCatalog()
	engine := bookingsservice.NewReservationEngine(
		experienceRepo,
		catalog,
		cfg.Location(),
		cfg.MaxCommitAttempts,
		cfg.Log,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingsrepo.NewMongoBookingRepository(cfg),
		engine,
		catalog,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg.Log,
	)
	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		experienceshandler.NewExperienceHandler(experienceService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.Run()
}

// initPublisher returns a Kafka-backed publisher when KAFKA_ENABLED is set and
// a no-op one otherwise.
func initPublisher(cfg *config.Config) (bookingsevents.Publisher, func()) {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return bookingsevents.NoopPublisher{}, func() {}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	confirmed := newProducer(cfg, kafkaCfg, cfg.BookingEventsTopic)
	reconciliation := newProducer(cfg, kafkaCfg, cfg.ReconciliationTopic)

	return bookingsevents.NewKafkaPublisher(confirmed, reconciliation), func() {
		for _, p := range []*kafka.Producer{confirmed, reconciliation} {
			if err := p.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "topic", p.Topic(), "error", err)
			}
		}
	}
}

func newProducer(cfg *config.Config, kafkaCfg *kafka_config.Config, topic string) *kafka.Producer {
	producer, err := kafka.NewProducer(kafkaCfg, topic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "topic", topic, "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	return producer
}
