package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
)

const keyPrefix = "repair:track:"

// TrackingCache caches tracking-lookup summaries in Redis. The public status
// page is read-heavy and tolerates briefly stale data; every status mutation
// invalidates the affected keys. All cache failures degrade to a miss.
type TrackingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTrackingCache creates a TrackingCache with the given TTL.
func NewTrackingCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *TrackingCache {
	return &TrackingCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached summary for the queried identifier, if present.
func (c *TrackingCache) Get(ctx context.Context, identifier string) (*bookingDomain.Summary, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+identifier).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("tracking cache read failed", zap.String("identifier", identifier), zap.Error(err))
		}
		return nil, false
	}

	var summary bookingDomain.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		c.logger.Warn("tracking cache entry corrupt", zap.String("identifier", identifier), zap.Error(err))
		return nil, false
	}
	return &summary, true
}

// Set stores the summary under the queried identifier.
func (c *TrackingCache) Set(ctx context.Context, identifier string, s bookingDomain.Summary) {
	raw, err := json.Marshal(s)
	if err != nil {
		c.logger.Warn("tracking cache marshal failed", zap.String("identifier", identifier), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, keyPrefix+identifier, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("tracking cache write failed", zap.String("identifier", identifier), zap.Error(err))
	}
}

// Invalidate drops the entries for each identifier. A booking is reachable
// by both tracking id and surrogate key, so mutations pass both.
func (c *TrackingCache) Invalidate(ctx context.Context, identifiers ...string) {
	keys := make([]string, len(identifiers))
	for i, id := range identifiers {
		keys[i] = keyPrefix + id
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("tracking cache invalidation failed", zap.Strings("identifiers", identifiers), zap.Error(err))
	}
}
