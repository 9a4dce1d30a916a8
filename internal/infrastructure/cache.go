package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Suleiman-Moraes/device-api/internal/config"
	appLogger "github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type CacheClient struct {
	client *redis.Client
	logger appLogger.Logger
	config config.Cache
}

func NewCacheClient(config config.Cache, logger appLogger.Logger) *CacheClient {
	opts := &redis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           int(config.DB),
		PoolSize:     int(config.PoolSize),
		MinIdleConns: int(config.MinIdleConns),
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolTimeout:  config.PoolTimeout,
		MaxRetries:   int(config.MaxRetries),
	}

	client := redis.NewClient(opts)

	return &CacheClient{
		client: client,
		logger: logger,
		config: config,
	}
}

func (c *CacheClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *CacheClient) Close() error {
	return c.client.Close()
}

func (c *CacheClient) Get(ctx context.Context, key string) ([]byte, error) {
	startTime := time.Now()

	result, err := c.client.Get(ctx, key).Bytes()
	duration := time.Since(startTime)

	c.logger.Debug().
		Str("key", key).
		Int64("duration_ms", duration.Milliseconds()).
		Bool("hit", err == nil).
		Msg("cache get operation")

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redis.Nil
		}
		c.logger.Error().
			Err(err).
			Str("key", key).
			Msg("cache get operation failed")

		return nil, err
	}

	return result, nil
}

func (c *CacheClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.config.DefaultExpiry
	}

	startTime := time.Now()
	var err error

	defer func() {
		duration := time.Since(startTime)

		c.logger.Debug().
			Str("key", key).
			Str("expiry", ttl.String()).
			Int64("duration_ms", duration.Milliseconds()).
			Bool("success", err == nil).
			Msg("cache set operation")
	}()

	err = c.client.Set(ctx, key, value, ttl).Err()

	return err
}

func (c *CacheClient) Delete(ctx context.Context, key string) error {
	startTime := time.Now()
	var err error

	defer func() {
		duration := time.Since(startTime)

		c.logger.Debug().
			Str("key", key).
			Int64("duration_ms", duration.Milliseconds()).
			Bool("success", err == nil).
			Msg("cache delete operation")
	}()

	err = c.client.Del(ctx, key).Err()

	return err
}

// TTL returns the remaining time-to-live of a key.
func (c *CacheClient) TTL(ctx context.Context, key string) time.Duration {
	result, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to get TTL")

		return 0
	}

	return result
}

// Scan iterates over keys matching a pattern.
func (c *CacheClient) Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, count).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("scanning keys: %w", err)
	}

	return keys, nextCursor, nil
}

// IsHealthy checks if the cache is available.
func (c *CacheClient) IsHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return c.Ping(ctx) == nil
}
