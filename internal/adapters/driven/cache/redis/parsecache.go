// Package redis provides a Redis-backed ParseCache.
//
// When the server is unreachable at construction the cache runs in bypass
// mode: every Get misses and every Set is a no-op.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
	"github.com/custodia-labs/cvkit/internal/logger"
)

// Ensure ParseCache implements the interface.
var _ driven.ParseCache = (*ParseCache)(nil)

const (
	keyPrefix      = "cvkit:parse:"
	defaultTTL     = 10 * time.Minute
	connectTimeout = 2 * time.Second
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ParseCache stores parse results in Redis as JSON.
type ParseCache struct {
	client *redis.Client
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// New connects to Redis. An unreachable server yields a bypassing cache, not an error.
func New(ctx context.Context, cfg Config) *ParseCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable at %s, bypassing parse cache: %v", cfg.Addr, err)
		_ = client.Close()
		return &ParseCache{ttl: ttl}
	}

	return &ParseCache{client: client, ttl: ttl}
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *ParseCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ParseCache{client: client, ttl: ttl}
}

// Available reports whether the cache is backed by a live client.
func (c *ParseCache) Available() bool {
	return c != nil && c.client != nil
}

// Get returns the cached result and true on a hit.
func (c *ParseCache) Get(ctx context.Context, key string) (*domain.ParsedCV, bool, error) {
	if !c.Available() {
		return nil, false, nil
	}

	b, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		c.warnUnavailableOnce(err)
		return nil, false, err
	}

	var parsed domain.ParsedCV
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, false, err
	}
	return &parsed, true, nil
}

// Set stores a result with the configured TTL.
func (c *ParseCache) Set(ctx context.Context, key string, parsed *domain.ParsedCV) error {
	if parsed == nil {
		return domain.ErrInvalidInput
	}
	if !c.Available() {
		return nil
	}

	b, err := json.Marshal(parsed)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+key, b, c.ttl).Err(); err != nil {
		c.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// Close releases the client.
func (c *ParseCache) Close() error {
	if !c.Available() {
		return nil
	}
	return c.client.Close()
}

func (c *ParseCache) warnUnavailableOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		logger.Warn("redis error, parse cache degraded: %v", err)
	}
}
