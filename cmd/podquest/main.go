package main

import (
	"context"

	cataloghandler "podquest/internal/catalog/handler"
	catalogsvc "podquest/internal/catalog/service"
	"podquest/internal/reservations/events"
	reservationhandler "podquest/internal/reservations/handler"
	"podquest/internal/reservations/repository"
	"podquest/internal/reservations/service"
	"podquest/internal/reservations/validator"
	"podquest/pkg/app"
	"podquest/pkg/config"
)

const ServiceName = "podquest"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting PodQuest service")

	catalogService, schedulerService, publisher := initServices(cfg)
	defer cfg.GracefulShutdown()
	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				cfg.Log.Error("Failed to close event publisher", "error", err)
			}
		}()
	}

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		cataloghandler.NewPodHandler(catalogService, cfg.Log),
		reservationhandler.NewReservationHandler(schedulerService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) (catalogsvc.CatalogService, service.SchedulerService, events.Publisher) {
	pods := catalogsvc.DefaultPods()
	if cfg.CatalogFile != "" {
		loaded, err := catalogsvc.LoadPodsFile(cfg.CatalogFile)
		if err != nil {
			cfg.Log.Fatal("Failed to load pod catalog", "file", cfg.CatalogFile, "error", err)
		}
		pods = loaded
	}

	catalogService, err := catalogsvc.NewCatalogService(pods, cfg)
	if err != nil {
		cfg.Log.Fatal("Invalid pod catalog", "error", err)
	}

	var store repository.LedgerStore
	switch cfg.LedgerBackend {
	case config.BackendMongo:
		cfg.SetMongo()
		store = repository.NewMongoLedgerStore(cfg)
	default:
		store = repository.NewCSVLedgerStore(cfg)
	}

	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg, ServiceName)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
		}
		cfg.Log.Info("Reservation events enabled", "topic", cfg.KafkaTopic)
	}

	schedulerService, err := service.NewSchedulerService(
		context.Background(),
		store,
		catalogService,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize scheduler", "error", err)
	}

	cfg.Log.Info("Scheduler initialized",
		"backend", cfg.LedgerBackend,
		"pods", len(catalogService.Pods()),
	)
	return catalogService, schedulerService, publisher
}
