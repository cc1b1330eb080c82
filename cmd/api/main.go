package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/caserne/backend/internal/config"
	"github.com/caserne/backend/internal/delivery/http/handler"
	"github.com/caserne/backend/internal/domain/repository"
	"github.com/caserne/backend/internal/platform/database"
	"github.com/caserne/backend/internal/platform/queue"
	"github.com/caserne/backend/internal/platform/storage"
	"github.com/caserne/backend/internal/repository/memory"
	"github.com/caserne/backend/internal/repository/postgres"
	"github.com/caserne/backend/internal/service"
	"github.com/caserne/backend/internal/worker"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialisation de la base de données ; repli mémoire en mode dégradé
	var agentRepo repository.AgentRepository
	var trainingRepo repository.TrainingRepository
	var participationRepo repository.ParticipationRepository

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		slog.Warn("could not connect to database, running in degraded mode with in-memory store", "error", err)
		store := memory.NewStore()
		agentRepo = store.Agents()
		trainingRepo = store.Trainings()
		participationRepo = store.Participations()
	} else {
		defer db.Close()
		if err := database.EnsureSchema(context.Background(), db); err != nil {
			slog.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		agentRepo = postgres.NewAgentRepository(db)
		trainingRepo = postgres.NewTrainingRepository(db)
		participationRepo = postgres.NewParticipationRepository(db)
	}

	// Initialisation RabbitMQ ; les fonctionnalités asynchrones sont
	// désactivées si le broker est injoignable
	publisher, err := queue.NewRabbitPublisher(cfg.RabbitURL)
	if err != nil {
		slog.Warn("could not connect to RabbitMQ, async features disabled", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	consumer, err := queue.NewRabbitConsumer(cfg.RabbitURL)
	if err != nil {
		slog.Warn("could not connect RabbitMQ consumer", "error", err)
		consumer = nil
	} else {
		defer consumer.Close()
	}

	// Initialisation MinIO pour les documents de formation
	var storageService service.StorageService
	storagePlatform, err := storage.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		slog.Warn("could not connect to MinIO, document uploads disabled", "error", err)
	} else {
		storageService = service.NewStorageService(storagePlatform, cfg.DocumentsBucket)
		if err := storageService.Initialize(context.Background()); err != nil {
			slog.Warn("could not initialize storage bucket", "error", err)
		}
	}

	// Injection des dépendances
	agentService := service.NewAgentService(agentRepo, participationRepo)
	trainingService := service.NewTrainingService(trainingRepo)
	participationService := service.NewParticipationService(participationRepo, agentRepo, trainingRepo, publisher)

	agentHandler := handler.NewAgentHandler(agentService)
	trainingHandler := handler.NewTrainingHandler(trainingService, storageService)
	participationHandler := handler.NewParticipationHandler(participationService)
	dashboardHandler := handler.NewDashboardHandler(agentService, trainingService, participationService)

	// Démarrage du worker de consommation des participations
	if consumer != nil {
		participationConsumer := worker.NewParticipationConsumer(consumer)
		if err := participationConsumer.Start(context.Background()); err != nil {
			slog.Warn("could not start participation consumer", "error", err)
		}
	}

	r := handler.NewRouter(agentHandler, trainingHandler, participationHandler, dashboardHandler)

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
