package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	_ "github.com/rentora/rentora-api/docs" // Swagger docs (generated)
	"github.com/rentora/rentora-api/internal/auth"
	"github.com/rentora/rentora-api/internal/config"
	"github.com/rentora/rentora-api/internal/database"
	httpServer "github.com/rentora/rentora-api/internal/http"
	"github.com/rentora/rentora-api/internal/logging"
	"github.com/rentora/rentora-api/internal/message"
	"github.com/rentora/rentora-api/internal/ratelimit"
	"github.com/rentora/rentora-api/internal/rental"
	"github.com/rentora/rentora-api/internal/upload"
	"github.com/rentora/rentora-api/internal/user"
)

// @title           Rentora API
// @version         1.0
// @description     A rental-listing REST API with JWT authentication, picture uploads, and messaging.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

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

	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	bunDB := database.NewBunDB(db)

	// Repositories
	userRepo := user.NewRepository(bunDB)
	rentalRepo := rental.NewRepository(bunDB)
	messageRepo := message.NewRepository(bunDB)

	// Token service holds the process-wide signing key
	tokenService, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	uploadService, err := upload.NewService(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize upload service: %w", err)
	}

	rateLimiter := ratelimit.NewLimiter(redisClient)

	// Services
	authService := auth.NewService(userRepo, tokenService, logger, cfg.Auth.BcryptCost)
	rentalService := rental.NewService(rentalRepo)
	messageService := message.NewService(messageRepo, rentalRepo)

	// Handlers and middleware
	handlers := httpServer.Handlers{
		Auth:    auth.NewHandler(authService, rateLimiter, logger),
		Rental:  rental.NewHandler(rentalService, uploadService, logger),
		Message: message.NewHandler(messageService, logger),
	}
	authMiddleware := auth.NewMiddleware(tokenService, userRepo)

	router := httpServer.NewRouter(cfg, handlers, authMiddleware, logger, uploadService.Dir())

	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

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
		log.Printf("Received signal: %v", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB opens and verifies the Postgres connection
func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// initRedis opens and verifies the Redis connection
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
