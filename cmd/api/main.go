package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/raida-labs/diag-raida-api/internal/config"
	"github.com/raida-labs/diag-raida-api/internal/database"
	"github.com/raida-labs/diag-raida-api/internal/handler"
	"github.com/raida-labs/diag-raida-api/internal/middleware"
	"github.com/raida-labs/diag-raida-api/internal/models"
	"github.com/raida-labs/diag-raida-api/internal/repository"
	"github.com/raida-labs/diag-raida-api/internal/router"
	"github.com/raida-labs/diag-raida-api/internal/service"
	"github.com/raida-labs/diag-raida-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var questions []models.Question
	if cfg.QuestionBankPath != "" {
		questions, err = repository.LoadQuestionBank(cfg.QuestionBankPath)
		if err != nil {
			log.Fatalf("failed to load question bank: %v", err)
		}
		logger.Info().Int("questions", len(questions)).Str("path", cfg.QuestionBankPath).Msg("question bank loaded")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	questionRepo := repository.NewQuestionRepository(questions)

	recommender := ai.NewOpenRouterClient(ai.OpenRouterConfig{
		APIKey:      cfg.OpenRouterAPIKey,
		BaseURL:     cfg.OpenRouterBaseURL,
		SiteURL:     cfg.OpenRouterSiteURL,
		AppName:     cfg.OpenRouterAppName,
		Model:       cfg.LLMModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
		Logger:      logger,
	})

	diagnosticService := service.NewDiagnosticService(questionRepo, logger)
	recommendationService := service.NewRecommendationService(recommender, cfg.LLMFallbackEnabled, redisClient, cfg.RecommendationCacheTTL, logger)

	diagnosticHandler := handler.NewDiagnosticHandler(diagnosticService, validate, logger)
	recommendationHandler := handler.NewRecommendationHandler(recommendationService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		DiagnosticHandler:     diagnosticHandler,
		RecommendationHandler: recommendationHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
