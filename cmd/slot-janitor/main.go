package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/shopcart/internal/cron"
	"github.com/angelmondragon/shopcart/internal/slots"
	"github.com/angelmondragon/shopcart/pkg/config"
	"github.com/angelmondragon/shopcart/pkg/logger"
	"github.com/angelmondragon/shopcart/pkg/metrics"
	"github.com/angelmondragon/shopcart/pkg/redis"
)

func main() {
	once := flag.Bool("once", false, "run a single cycle and exit")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "slot-janitor"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "slot-janitor",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"storage": cfg.Storage.NormalizedDriver(),
	})

	if code := run(ctx, cfg, logg, *once); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, once bool) int {
	switch cfg.Storage.NormalizedDriver() {
	case config.DriverMemory:
		logg.Info(ctx, "memory slots live in the storefront process; nothing to purge")
		return 0
	case config.DriverRedis:
		logg.Info(ctx, "redis slots expire through SHOPCART_REDIS_SLOT_TTL; nothing to purge")
		return 0
	}

	backend, closeSlot, err := slots.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open slot backend", err)
		return 1
	}
	defer func() {
		if err := closeSlot(context.Background()); err != nil {
			logg.Error(ctx, "error closing slot backend", err)
		}
	}()

	purger, ok := backend.(cron.SlotPurger)
	if !ok {
		logg.Error(ctx, "slot backend cannot purge", fmt.Errorf("%T has no retention support", backend))
		return 1
	}

	lock, closeLock, err := buildLock(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to create janitor lock", err)
		return 1
	}
	defer closeLock()

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)
	retention, err := cron.NewSlotRetentionJob(cron.SlotRetentionJobParams{
		Logger:    logg,
		Slots:     purger,
		Retention: cfg.Janitor.Retention,
		Metrics:   jobMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create retention job", err)
		return 1
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(retention),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Janitor.Interval,
	})
	if err != nil {
		logg.Error(ctx, "failed to create janitor service", err)
		return 1
	}

	if once {
		if err := service.RunOnce(ctx); err != nil {
			logg.Error(ctx, "janitor cycle failed", err)
			return 1
		}
		return 0
	}

	logg.Info(ctx, "starting slot janitor")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "slot janitor stopped unexpectedly", err)
		return 1
	}
	logg.Info(ctx, "slot janitor shutting down gracefully")
	return 0
}

// buildLock uses a Redis lock when Redis is configured so several janitor
// replicas never purge concurrently.
func buildLock(ctx context.Context, cfg *config.Config, logg *logger.Logger) (cron.Lock, func(), error) {
	if cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return &cron.LocalLock{}, func() {}, nil
	}
	client, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return nil, nil, err
	}
	env := cfg.App.Env
	if env == "" {
		env = "local"
	}
	lock, err := cron.NewRedisLock(client, client.LockKey("slot-janitor:"+env), cfg.Janitor.LockTTL)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return lock, func() {
		if err := client.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}, nil
}
