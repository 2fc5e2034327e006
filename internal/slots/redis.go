package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/shopcart/internal/cart"
	"github.com/angelmondragon/shopcart/pkg/redis"
)

// Redis stores each slot as a string under the sc:slot: namespace.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis builds a redis-backed slot. A zero ttl keeps slots forever.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Read(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.client.SlotKey(key))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return "", cart.ErrSlotEmpty
		}
		return "", fmt.Errorf("redis get slot: %w", err)
	}
	return v, nil
}

func (r *Redis) Write(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.client.SlotKey(key), value, r.ttl); err != nil {
		return fmt.Errorf("redis set slot: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.client.SlotKey(key)); err != nil {
		return fmt.Errorf("redis del slot: %w", err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

var _ cart.Slot = (*Redis)(nil)
