package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agency-admin-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache is a read-through JSON cache for analytics rollups. A nil *Cache
// is valid and disables caching, so callers never branch on configuration.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// New creates a cache from config; returns nil when disabled
func New(cfg *config.RedisConfig, log zerolog.Logger) *Cache {
	if !cfg.Enabled {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Cache{
		rdb: rdb,
		ttl: cfg.TTL,
		log: log.With().Str("component", "cache").Logger(),
	}
}

// Get unmarshals the cached value into v; reports whether it was present.
// Redis failures degrade to a miss.
func (c *Cache) Get(ctx context.Context, key string, v interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache decode failed")
		return false
	}
	return true
}

// Set stores v under key with the configured TTL; failures are logged only
func (c *Cache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Close releases the underlying connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
