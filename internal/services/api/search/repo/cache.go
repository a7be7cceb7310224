package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"

	"github.com/redis/go-redis/v9"
)

// CachedCompletions is a read-through Redis cache in front of LevelIDs
// redis failures degrade to the inner store
type CachedCompletions struct {
	inner domain.CompletionRepo
	kv    redis.Cmdable
	ttl   time.Duration
}

// NewCachedCompletions wraps inner; a nil client or ttl <= 0 returns inner unchanged
func NewCachedCompletions(inner domain.CompletionRepo, kv redis.Cmdable, ttl time.Duration) domain.CompletionRepo {
	if kv == nil || ttl <= 0 {
		return inner
	}
	return &CachedCompletions{inner: inner, kv: kv, ttl: ttl}
}

// CompletionKey is the cache key of one user's completed or attempted set
func CompletionKey(userID string, complete bool) string {
	return fmt.Sprintf("search:completions:%s:%t", userID, complete)
}

// LevelIDs serves the set from Redis, filling it from inner on a miss
func (c *CachedCompletions) LevelIDs(ctx context.Context, userID string, complete bool) ([]string, error) {
	key := CompletionKey(userID, complete)
	log := logger.C(ctx).With().Str("component", "search.cache").Str("key", key).Logger()

	b, err := c.kv.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var ids []string
		if jerr := json.Unmarshal(b, &ids); jerr == nil {
			return ids, nil
		}
		log.Warn().Msg("discarding malformed cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Msg("cache read failed")
	}

	ids, err := c.inner.LevelIDs(ctx, userID, complete)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(ids); err == nil {
		if err := c.kv.Set(ctx, key, b, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Msg("cache write failed")
		}
	}
	return ids, nil
}

// Moves is never cached
func (c *CachedCompletions) Moves(ctx context.Context, userID string, levelIDs []string) (map[string]int, error) {
	return c.inner.Moves(ctx, userID, levelIDs)
}
