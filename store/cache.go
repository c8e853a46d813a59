package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BaSui01/ragflow/internal/metrics"
)

// GroupResolver is the permission lookup the cache wraps.
type GroupResolver interface {
	ResolveGroups(ctx context.Context, projectID string) (disabled, public []string, err error)
}

type cachedGroups struct {
	Disabled []string `json:"disabled"`
	Public   []string `json:"public"`
}

// CachedResolver is a Redis read-through cache over a GroupResolver.
// Cache failures fall through to the underlying resolver.
type CachedResolver struct {
	inner     GroupResolver
	client    redis.UniversalClient
	ttl       time.Duration
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewCachedResolver wraps a resolver with a Redis cache. A zero TTL
// defaults to five minutes.
func NewCachedResolver(inner GroupResolver, client redis.UniversalClient, ttl time.Duration, collector *metrics.Collector, logger *zap.Logger) *CachedResolver {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedResolver{
		inner:     inner,
		client:    client,
		ttl:       ttl,
		collector: collector,
		logger:    logger.With(zap.String("component", "group_cache")),
	}
}

func cacheKey(projectID string) string {
	return "ragflow:doc_groups:" + projectID
}

// ResolveGroups serves from cache when possible and repopulates on miss.
func (c *CachedResolver) ResolveGroups(ctx context.Context, projectID string) ([]string, []string, error) {
	key := cacheKey(projectID)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var cached cachedGroups
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			c.hit()
			return cached.Disabled, cached.Public, nil
		}
		c.logger.Warn("dropping undecodable cache entry", zap.String("key", key))
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	c.miss()

	disabled, public, err := c.inner.ResolveGroups(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	payload, err := json.Marshal(cachedGroups{Disabled: disabled, Public: public})
	if err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return disabled, public, nil
}

// Invalidate drops the cached entry for a project.
func (c *CachedResolver) Invalidate(ctx context.Context, projectID string) error {
	return c.client.Del(ctx, cacheKey(projectID)).Err()
}

func (c *CachedResolver) hit() {
	if c.collector != nil {
		c.collector.CacheHits.WithLabelValues("doc_groups").Inc()
	}
}

func (c *CachedResolver) miss() {
	if c.collector != nil {
		c.collector.CacheMisses.WithLabelValues("doc_groups").Inc()
	}
}
