package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kaufy/projection-engine/internal/config"
	"github.com/kaufy/projection-engine/internal/handler"
	"github.com/kaufy/projection-engine/internal/logger"
	"github.com/kaufy/projection-engine/internal/repository"
	"github.com/kaufy/projection-engine/internal/service"
	"github.com/kaufy/projection-engine/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateDatabase(); err != nil {
		logrus.Fatalf("Invalid database configuration: %v", err)
	}

	log := logger.New(cfg.Logging)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	marketRepo := repository.NewMarketRepository(db)
	projectionCache := repository.NewRedisProjectionCache(redisClient)

	// Initialize services
	projectionService := service.NewProjectionService(projectionCache, cfg, log)
	portfolioService := service.NewPortfolioService(portfolioRepo, projectionService, cfg, log)
	investmentService := service.NewInvestmentService(marketRepo, cfg, log)

	limiter := response.NewRateLimiter(cfg.RateLimit.Requests, cfg.GetRateLimitWindow())
	defer limiter.Stop()

	// Setup routes
	router := handler.NewRouter(handler.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.Check{
			"database": handler.DatabaseCheck(db),
			"redis":    handler.RedisCheck(redisClient),
		}, cfg.GetHealthTimeout()),
		Projection: handler.NewProjectionHandler(projectionService),
		Portfolio:  handler.NewPortfolioHandler(portfolioService),
		Investment: handler.NewInvestmentHandler(investmentService),
	}, limiter, log)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		log.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
