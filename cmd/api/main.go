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
	"github.com/rs/zerolog"

	"github.com/greenquest/mythbuster-api/internal/config"
	"github.com/greenquest/mythbuster-api/internal/database"
	"github.com/greenquest/mythbuster-api/internal/game"
	"github.com/greenquest/mythbuster-api/internal/handler"
	"github.com/greenquest/mythbuster-api/internal/middleware"
	"github.com/greenquest/mythbuster-api/internal/models"
	"github.com/greenquest/mythbuster-api/internal/repository"
	"github.com/greenquest/mythbuster-api/internal/router"
	"github.com/greenquest/mythbuster-api/internal/service"
	"github.com/greenquest/mythbuster-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Player{}, &models.LeaderboardEntry{}, &models.TurnRecord{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	provider, closeProvider, err := buildProvider(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create ai provider: %v", err)
	}
	if closeProvider != nil {
		defer closeProvider()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	playerRepo := repository.NewPlayerRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	turnRepo := repository.NewTurnRepository(db)

	sessions := service.NewSessionRegistry()

	var grader ai.Grader
	var generator ai.MythGenerator
	if provider != nil {
		grader = provider
		generator = provider
	}

	cycle := game.NewCycle(generator, cfg.MythTimeout, logger)

	authService := service.NewAuthService(playerRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, redisClient, cfg.LeaderboardCacheTTL, logger)
	gameService := service.NewGameService(sessions, grader, cycle, leaderboardService, turnRepo, validate, cfg.GradeTimeout, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	gameHandler := handler.NewGameHandler(gameService, logger)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        authHandler,
		GameHandler:        gameHandler,
		LeaderboardHandler: leaderboardHandler,
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildProvider selects the configured AI backend. A missing API key is
// tolerated so the service can run with offline myths and fallback grading.
func buildProvider(cfg config.Config, logger zerolog.Logger) (ai.Provider, func(), error) {
	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn().Msg("openai api key missing, running in offline mode")
			return nil, nil, nil
		}

		provider, err := ai.NewOpenAIProvider(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			return nil, nil, err
		}

		return provider, nil, nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logger.Warn().Msg("gemini api key missing, running in offline mode")
			return nil, nil, nil
		}

		provider, err := ai.NewGeminiProvider(context.Background(), ai.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
			Logger: logger,
		})
		if err != nil {
			return nil, nil, err
		}

		return provider, func() { _ = provider.Close() }, nil
	default:
		logger.Warn().Str("provider", cfg.AIProvider).Msg("unknown ai provider, running in offline mode")
		return nil, nil, nil
	}
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
