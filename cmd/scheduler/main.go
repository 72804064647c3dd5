package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/config"
	"github.com/segyhp/lending-engine/internal/notify"
	"github.com/segyhp/lending-engine/internal/repository"
	"github.com/segyhp/lending-engine/internal/scheduler"
	"github.com/segyhp/lending-engine/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.NewLogger()
	logger.WithField("config", cfg.String()).Info("Starting lending scheduler...")

	db, err := initDB(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.RedisEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		cache = repository.NewRedisCache(redisClient)
	}

	lendingService := service.NewLendingService(repository.NewRepositories(db), cache, cfg, logger)

	// Reminders are skipped entirely when SMTP is not configured
	var sender scheduler.ReminderSender
	if cfg.SMTPEnabled() {
		sender = notify.NewSender(cfg, logger)
	} else {
		logger.Warn("SMTP_HOST not set, payment reminders are disabled")
	}

	jobs := scheduler.NewJobs(lendingService, sender, logger, cfg.Scheduler.ReminderWindowDays, cfg.GetLocation())

	c := scheduler.NewCron(logger, cfg.GetLocation())
	if err := jobs.Register(c, cfg.Scheduler.ReconcileCron, cfg.Scheduler.ReminderCron); err != nil {
		logger.WithError(err).Fatal("Failed to schedule jobs")
	}

	c.Start()
	logger.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	logger.Info("Scheduler stopped")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return repository.Connect(ctx, cfg.Database.Driver, cfg.Database.URL, repository.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.GetConnMaxLifetime(),
	})
}
