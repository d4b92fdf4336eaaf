package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/faithconnect/backend/internal/domain/streaming"
)

const viewerKeyPrefix = "stream:viewers:"

// leaveScript decrements a viewer count without going below zero.
// Runs atomically so concurrent leaves cannot drive the count negative.
var leaveScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current <= 0 then
	redis.call('SET', KEYS[1], '0')
	return 0
end
return redis.call('DECR', KEYS[1])
`)

// RedisViewerCounter tracks live viewer counts in Redis so counts are
// shared across instances. Counts are ephemeral by design.
type RedisViewerCounter struct {
	client *redis.Client
}

// NewRedisViewerCounter creates a viewer counter backed by an existing
// Redis client
func NewRedisViewerCounter(client *redis.Client) *RedisViewerCounter {
	return &RedisViewerCounter{client: client}
}

func viewerKey(streamID uuid.UUID) string {
	return viewerKeyPrefix + streamID.String()
}

// Join increments the viewer count and returns the new total
func (c *RedisViewerCounter) Join(ctx context.Context, streamID uuid.UUID) (int64, error) {
	count, err := c.client.Incr(ctx, viewerKey(streamID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment viewer count: %w", err)
	}
	return count, nil
}

// Leave decrements the viewer count, flooring at zero
func (c *RedisViewerCounter) Leave(ctx context.Context, streamID uuid.UUID) (int64, error) {
	count, err := leaveScript.Run(ctx, c.client, []string{viewerKey(streamID)}).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to decrement viewer count: %w", err)
	}
	return count, nil
}

// Current returns the current viewer count
func (c *RedisViewerCounter) Current(ctx context.Context, streamID uuid.UUID) (int64, error) {
	count, err := c.client.Get(ctx, viewerKey(streamID)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read viewer count: %w", err)
	}
	return count, nil
}

// Reset clears the count when a stream ends
func (c *RedisViewerCounter) Reset(ctx context.Context, streamID uuid.UUID) error {
	if err := c.client.Del(ctx, viewerKey(streamID)).Err(); err != nil {
		return fmt.Errorf("failed to reset viewer count: %w", err)
	}
	return nil
}

var _ streaming.ViewerCounter = (*RedisViewerCounter)(nil)

// InMemoryViewerCounter is a process-local viewer counter suitable for
// single-instance deployments and testing
type InMemoryViewerCounter struct {
	mu     sync.Mutex
	counts map[uuid.UUID]int64
}

// NewInMemoryViewerCounter creates an empty in-memory viewer counter
func NewInMemoryViewerCounter() *InMemoryViewerCounter {
	return &InMemoryViewerCounter{
		counts: make(map[uuid.UUID]int64),
	}
}

// Join increments the viewer count and returns the new total
func (c *InMemoryViewerCounter) Join(_ context.Context, streamID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[streamID]++
	return c.counts[streamID], nil
}

// Leave decrements the viewer count, flooring at zero
func (c *InMemoryViewerCounter) Leave(_ context.Context, streamID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts[streamID] <= 0 {
		c.counts[streamID] = 0
		return 0, nil
	}
	c.counts[streamID]--
	return c.counts[streamID], nil
}

// Current returns the current viewer count
func (c *InMemoryViewerCounter) Current(_ context.Context, streamID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[streamID], nil
}

// Reset clears the count when a stream ends
func (c *InMemoryViewerCounter) Reset(_ context.Context, streamID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, streamID)
	return nil
}

var _ streaming.ViewerCounter = (*InMemoryViewerCounter)(nil)
