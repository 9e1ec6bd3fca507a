package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/devlinkhq/devlink-api/docs" // Swagger docs
	"github.com/devlinkhq/devlink-api/internal/auth"
	"github.com/devlinkhq/devlink-api/internal/config"
	"github.com/devlinkhq/devlink-api/internal/database"
	httpServer "github.com/devlinkhq/devlink-api/internal/http"
	"github.com/devlinkhq/devlink-api/internal/logging"
	"github.com/devlinkhq/devlink-api/internal/post"
	"github.com/devlinkhq/devlink-api/internal/profile"
	"github.com/devlinkhq/devlink-api/internal/ratelimit"
	"github.com/devlinkhq/devlink-api/internal/user"
)

// @title           DevLink API
// @version         1.0
// @description     REST API for a developer social network: identities, profiles and posts.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth-token

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	db, err := database.Open(cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := user.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	postRepo := post.NewRepository(db)

	rateLimiter := ratelimit.NewLimiter(redisClient, cfg.RateLimit.Window, cfg.RateLimit.Max)

	tokenService, err := auth.NewJWTService(cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Services
	authService := auth.NewService(userRepo, tokenService, logger, cfg.Auth.TokenTTL)
	profileService := profile.NewService(profileRepo, userRepo, logger)
	postService := post.NewService(postRepo, userRepo, logger)

	githubClient := profile.NewGitHubClient(cfg.GitHub.Token)

	// HTTP handlers
	authHandler := auth.NewHandler(authService, rateLimiter, logger)
	profileHandler := profile.NewHandler(profileService, githubClient, logger)
	postHandler := post.NewHandler(postService, logger)
	authMiddleware := auth.NewMiddleware(tokenService)

	router := httpServer.NewRouter(cfg, authHandler, profileHandler, postHandler, authMiddleware, logger)

	server := httpServer.NewServer(cfg.Server, router, logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initRedis initializes the Redis connection used by the rate limiter.
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
