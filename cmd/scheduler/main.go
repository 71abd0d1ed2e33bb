package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/kaufy/projection-engine/internal/config"
	"github.com/kaufy/projection-engine/internal/logger"
	"github.com/kaufy/projection-engine/internal/repository"
	"github.com/kaufy/projection-engine/internal/service"
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
	log.Info("Starting projection scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	projections := service.NewProjectionService(repository.NewRedisProjectionCache(redisClient), cfg, log)
	portfolios := service.NewPortfolioService(repository.NewPortfolioRepository(db), projections, cfg, log)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetSchedulerLocation()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := setupCronJobs(ctx, c, cfg, portfolios, log); err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start the scheduler
	c.Start()
	log.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	cancel()
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

type cacheWarmer interface {
	WarmCache(ctx context.Context) (int, error)
}

func setupCronJobs(ctx context.Context, c *cron.Cron, cfg *config.Config, warmer cacheWarmer, log *logrus.Logger) error {
	_, err := c.AddFunc(cfg.Scheduler.Cron, func() {
		log.Info("Running portfolio projection warm-up job...")
		warmPortfolioProjections(ctx, warmer, log)
	})
	if err != nil {
		return err
	}

	log.WithField("spec", cfg.Scheduler.Cron).Info("Cron jobs scheduled successfully")
	return nil
}

func warmPortfolioProjections(ctx context.Context, warmer cacheWarmer, log *logrus.Logger) {
	warmed, err := warmer.WarmCache(ctx)
	if err != nil {
		log.WithError(err).WithField("warmed", warmed).Error("Portfolio projection warm-up aborted")
		return
	}
	log.WithField("warmed", warmed).Info("Portfolio projection warm-up finished")
}
