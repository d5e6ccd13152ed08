package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/akarwowski/lingocards-backend/internal/clients/generator"
	"github.com/akarwowski/lingocards-backend/internal/clients/redis"
	"github.com/akarwowski/lingocards-backend/internal/db"
	"github.com/akarwowski/lingocards-backend/internal/handlers"
	"github.com/akarwowski/lingocards-backend/internal/middleware"
	"github.com/akarwowski/lingocards-backend/internal/pkg/envutil"
	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/repos"
	"github.com/akarwowski/lingocards-backend/internal/server"
	"github.com/akarwowski/lingocards-backend/internal/services"
)

func main() {
	// Logger
	logMode := envutil.Get("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := envutil.Get("JWT_SECRET_KEY", "defaultsecret")
	sessionCookieName := envutil.Get("SESSION_COOKIE_NAME", "session_token")
	guestCardsTTLDays := envutil.Int("GUEST_CARDS_TTL_DAYS", 30)

	sessionCfg := services.DefaultSessionConfig()
	sessionCfg.DemoIdentity = envutil.Get("DEMO_IDENTITY", sessionCfg.DemoIdentity)
	sessionCfg.DemoEmail = envutil.Get("DEMO_EMAIL", sessionCfg.DemoEmail)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis
	kvStore, err := redis.NewKVStore(log)
	if err != nil {
		log.Error("Redis init failed", "error", err)
		os.Exit(1)
	}
	defer kvStore.Close()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	flashcardRepo := repos.NewFlashcardRepo(thePG, log)
	progressRepo := repos.NewProgressRepo(thePG, log)
	userEventRepo := repos.NewUserEventRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	identityResolver := services.NewJWTIdentityResolver(log, jwtSecretKey, sessionCookieName)
	sessionService := services.NewSessionService(log, identityResolver, sessionCfg)
	dedupService := services.NewDedupService(log)
	guestTTL := time.Duration(guestCardsTTLDays) * 24 * time.Hour
	guestCardService := services.NewGuestCardService(log, kvStore, guestTTL)
	cardGenerator, err := generator.NewHTTPGenerator(log)
	if err != nil {
		log.Error("Could not init card generator", "error", err)
		os.Exit(1)
	}
	generationService := services.NewGenerationService(log, cardGenerator, dedupService, guestCardService, flashcardRepo)
	cardService := services.NewCardService(log, guestCardService, flashcardRepo)
	importService := services.NewImportService(log, userRepo, flashcardRepo, userEventRepo)
	statsProvider := services.NewRepoStatsProvider(log, flashcardRepo, progressRepo)
	progressService := services.NewProgressService(log, statsProvider, userRepo)
	reviewService := services.NewReviewService(log, flashcardRepo, progressRepo, userEventRepo)
	userService := services.NewUserService(log, userRepo)

	// The shared demo account must exist before any demo session writes rows.
	if _, err := userRepo.EnsureExists(context.Background(), nil, sessionCfg.DemoIdentity, sessionCfg.DemoEmail); err != nil {
		log.Warn("Could not provision demo account", "error", err)
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	flashcardHandler := handlers.NewFlashcardHandler(log, generationService, cardService)
	sessionHandler := handlers.NewSessionHandler(log, sessionService, importService, guestCardService)
	progressHandler := handlers.NewProgressHandler(log, progressService, reviewService)
	userHandler := handlers.NewUserHandler(log, userService)

	// Middleware
	sessionMiddleware := middleware.NewSessionMiddleware(log, sessionService, sessionCfg.GuestCookieName, guestTTL)

	// Router
	log.Info("Setting up router from main...")
	allowOrigins := strings.Split(envutil.Get("CORS_ALLOW_ORIGINS", "http://localhost:3000"), ",")
	router := server.NewRouter(server.RouterConfig{
		SessionMiddleware: sessionMiddleware,
		FlashcardHandler:  flashcardHandler,
		SessionHandler:    sessionHandler,
		ProgressHandler:   progressHandler,
		UserHandler:       userHandler,
		AllowOrigins:      allowOrigins,
	})

	port := envutil.Get("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
