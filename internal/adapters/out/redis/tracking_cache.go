// Package redis caches the tracking number to shipment id mapping.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tracking:"

type Config struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// TrackingCache implements ports.TrackingCache.
type TrackingCache struct {
	client *redis.Client
}

func NewTrackingCache(cfg Config) *TrackingCache {
	return NewTrackingCacheWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))
}

func NewTrackingCacheWithClient(client *redis.Client) *TrackingCache {
	return &TrackingCache{client: client}
}

func (c *TrackingCache) Get(ctx context.Context, trackingNumber string) (kernel.UUID, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+trackingNumber).Result()
	if errors.Is(err, redis.Nil) {
		return kernel.UUID{}, false, nil
	}
	if err != nil {
		return kernel.UUID{}, false, fmt.Errorf("failed to read tracking cache: %w", err)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		// A value we cannot parse is treated as a miss and overwritten later.
		return kernel.UUID{}, false, nil
	}
	return id, true, nil
}

func (c *TrackingCache) Set(ctx context.Context, trackingNumber string, id kernel.UUID, ttl time.Duration) error {
	if err := c.client.Set(ctx, keyPrefix+trackingNumber, id.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to write tracking cache: %w", err)
	}
	return nil
}

func (c *TrackingCache) Delete(ctx context.Context, trackingNumber string) error {
	if err := c.client.Del(ctx, keyPrefix+trackingNumber).Err(); err != nil {
		return fmt.Errorf("failed to evict tracking cache: %w", err)
	}
	return nil
}

func (c *TrackingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *TrackingCache) Close() error {
	return c.client.Close()
}
