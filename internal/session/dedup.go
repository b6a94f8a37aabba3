package session

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

// RedisEventDeduplicator remembers processed webhook event ids for ttl.
type RedisEventDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

var _ port.EventDeduplicator = (*RedisEventDeduplicator)(nil)

func NewRedisEventDeduplicator(client *redis.Client, ttl time.Duration) *RedisEventDeduplicator {
	return &RedisEventDeduplicator{
		client: client,
		ttl:    ttl,
	}
}

func (d *RedisEventDeduplicator) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, eventKey(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("client.Exists: %w", err)
	}

	return n > 0, nil
}

func (d *RedisEventDeduplicator) Remember(ctx context.Context, eventID string) error {
	if err := d.client.Set(ctx, eventKey(eventID), "1", d.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func eventKey(eventID string) string {
	return "idemp:webhook:" + eventID
}
