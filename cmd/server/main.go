package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/asmec-academy/assessment-engine/internal/cache"
	"github.com/asmec-academy/assessment-engine/internal/config"
	"github.com/asmec-academy/assessment-engine/internal/events"
	"github.com/asmec-academy/assessment-engine/internal/handlers"
	"github.com/asmec-academy/assessment-engine/internal/models"
	"github.com/asmec-academy/assessment-engine/internal/repositories"
	"github.com/asmec-academy/assessment-engine/internal/repositories/postgres"
	"github.com/asmec-academy/assessment-engine/internal/services"
	"github.com/asmec-academy/assessment-engine/internal/validator"
	"github.com/asmec-academy/assessment-engine/pkg"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// importQuestions loads a question workbook from disk, replacing the seeded
// or stored bank for this process.
func importQuestions(path string) (map[string][]*models.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return repositories.ImportQuestionsFromExcel(f)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var logger *slog.Logger
	if cfg.Environment == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	questionBank := repositories.SeedQuestionBank()
	var proficiencyStore repositories.ProficiencyStore = repositories.NewMemoryProficiencyStore()
	var db *gorm.DB

	if cfg.DatabaseURL != "" {
		db, err = pkg.InitDatabase(cfg)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		proficiencyStore = postgres.NewProficiencyPostgreSQL(db)

		stored, err := postgres.LoadQuestionBank(context.Background(), db)
		if err != nil {
			logger.Error("Failed to load question bank", "error", err)
			os.Exit(1)
		}
		if len(stored) > 0 {
			questionBank = stored
		}
	}

	if cfg.QuestionsFile != "" {
		imported, err := importQuestions(cfg.QuestionsFile)
		if err != nil {
			logger.Error("Failed to import question workbook", "path", cfg.QuestionsFile, "error", err)
			os.Exit(1)
		}
		questionBank = imported
		logger.Info("Imported question bank from workbook",
			"path", cfg.QuestionsFile,
			"topics", len(imported))
		if db != nil {
			if err := postgres.SaveQuestionBank(context.Background(), db, imported); err != nil {
				logger.Error("Failed to persist imported question bank", "error", err)
				os.Exit(1)
			}
		}
	}

	if cfg.RedisURL != "" {
		client, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		proficiencyStore = cache.NewCachedProficiencyStore(proficiencyStore, client, 10*time.Minute, logger)
	}

	var publisher events.EventPublisher = events.NewMockEventPublisher(logger)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.EventTopic,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("Failed to create event publisher", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	templates := services.DefaultTemplates()
	hints := services.DefaultHints()
	if cfg.TemplateFile != "" {
		templates, hints, err = services.LoadTemplateFile(cfg.TemplateFile)
		if err != nil {
			logger.Error("Failed to load template file", "path", cfg.TemplateFile, "error", err)
			os.Exit(1)
		}
	}

	v := validator.New()
	seed := time.Now().UnixNano()
	questionRepo := repositories.NewQuestionRepository(questionBank)
	proficiencyService := services.NewProficiencyService(proficiencyStore, logger, rand.New(rand.NewSource(seed)))

	manager := services.ServiceManager{
		Assessment: services.NewAssessmentService(
			questionRepo,
			proficiencyService,
			publisher,
			v,
			logger,
			rand.New(rand.NewSource(seed+1)),
			services.SessionConfig{
				MaxQuestions: cfg.MaxQuestions,
				Topics:       cfg.SessionTopics,
			},
		),
		Exercise:    services.NewExerciseService(templates, hints, logger, rand.New(rand.NewSource(seed+2))),
		Proficiency: proficiencyService,
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	handlers.NewHandlerManager(manager, v, logger).SetupRoutes(router)

	logger.Info("Starting assessment engine",
		"port", cfg.Port,
		"topics", cfg.SessionTopics,
		"max_questions", cfg.MaxQuestions)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
