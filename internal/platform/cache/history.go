// Package cache holds the redis-backed caches. Screening history is the
// only cached read path: summaries change rarely and are re-read on every
// dashboard load.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindscreen/internal/screening"
)

const historyKeyPrefix = "mindscreen:user:"
const historyKeySuffix = ":history"

// HistoryCache stores per-user screening summaries as JSON blobs with a
// TTL. Entries are dropped whenever a new session is saved.
type HistoryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewHistoryCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *HistoryCache {
	return &HistoryCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func historyKey(userID uuid.UUID) string {
	return historyKeyPrefix + userID.String() + historyKeySuffix
}

func (c *HistoryCache) GetHistory(ctx context.Context, userID uuid.UUID) ([]screening.SessionSummary, error) {
	val, err := c.client.Get(ctx, historyKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, screening.ErrCacheMiss
		}
		return nil, fmt.Errorf("get history cache: %w", err)
	}

	var summaries []screening.SessionSummary
	if err := json.Unmarshal([]byte(val), &summaries); err != nil {
		return nil, fmt.Errorf("unmarshal cached history: %w", err)
	}
	return summaries, nil
}

func (c *HistoryCache) SetHistory(ctx context.Context, userID uuid.UUID, summaries []screening.SessionSummary) error {
	data, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := c.client.Set(ctx, historyKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set history cache: %w", err)
	}
	return nil
}

func (c *HistoryCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, historyKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate history cache: %w", err)
	}
	c.logger.Debug("history cache invalidated",
		zap.String("user_id", userID.String()),
	)
	return nil
}
