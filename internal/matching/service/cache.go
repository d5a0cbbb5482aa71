package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "callsync/pkg/domain"
)

const matchResultKeyPrefix = "match:result:"

// RedisCache stores JSON-encoded match results keyed by recording ID with a
// fixed TTL. Keys are per-recording, so invalidation after a link commit or
// release is a single DEL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, recordingID id.RecordingID) (Result, bool, error) {
	raw, err := c.client.Get(ctx, matchResultKey(recordingID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, fmt.Errorf("read match result: %w", err)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		// A corrupt entry is unusable; drop it so the next write replaces it.
		_ = c.client.Del(ctx, matchResultKey(recordingID)).Err()
		return Result{}, false, fmt.Errorf("decode match result: %w", err)
	}
	return result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, recordingID id.RecordingID, result Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode match result: %w", err)
	}
	if err := c.client.Set(ctx, matchResultKey(recordingID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write match result: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, recordingID id.RecordingID) error {
	if err := c.client.Del(ctx, matchResultKey(recordingID)).Err(); err != nil {
		return fmt.Errorf("invalidate match result: %w", err)
	}
	return nil
}

func matchResultKey(recordingID id.RecordingID) string {
	return matchResultKeyPrefix + recordingID.String()
}
