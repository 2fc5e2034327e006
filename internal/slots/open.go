package slots

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/angelmondragon/shopcart/internal/cart"
	"github.com/angelmondragon/shopcart/pkg/config"
	"github.com/angelmondragon/shopcart/pkg/db"
	"github.com/angelmondragon/shopcart/pkg/logger"
	"github.com/angelmondragon/shopcart/pkg/migrate"
	"github.com/angelmondragon/shopcart/pkg/mongodb"
	"github.com/angelmondragon/shopcart/pkg/redis"
)

// Backend is a cart slot that also answers readiness checks.
type Backend interface {
	cart.Slot
	Ping(ctx context.Context) error
}

// CloseFunc releases the connections behind a Backend.
type CloseFunc func(ctx context.Context) error

// Open connects the configured storage driver. SQL backends are migrated
// first when auto-migrate is on.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Backend, CloseFunc, error) {
	driver := cfg.Storage.NormalizedDriver()
	switch driver {
	case config.DriverMemory:
		logg.Warn(ctx, "memory slot backend selected, carts are lost on restart")
		return NewMemory(), func(context.Context) error { return nil }, nil

	case config.DriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		return NewRedis(client, cfg.Redis.SlotTTL), func(context.Context) error { return client.Close() }, nil

	case config.DriverPostgres, config.DriverSQLite:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return nil, nil, multierr.Append(fmt.Errorf("run migrations: %w", err), client.Close())
		}
		return NewSQL(client), func(context.Context) error { return client.Close() }, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap mongo: %w", err)
		}
		return NewMongo(client.Collection(), client.Ping), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver %q", driver)
}
