package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const unreadTTL = 10 * time.Minute

// Cache keeps per-user unread counters in Redis so the badge count on every
// page load does not hit Postgres. A nil client disables caching entirely.
type Cache struct {
	client *redis.Client
}

// NewCache creates the unread-counter cache
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func unreadKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}

// GetUnread returns the cached counter and whether it was present
func (c *Cache) GetUnread(ctx context.Context, userID uuid.UUID) (int, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, unreadKey(userID)).Int()
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetUnread stores the counter
func (c *Cache) SetUnread(ctx context.Context, userID uuid.UUID, count int) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, unreadKey(userID), count, unreadTTL)
}

// IncrUnread bumps the counter if it is cached. A missing key stays missing
// so the next read repopulates from the database.
func (c *Cache) IncrUnread(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	key := unreadKey(userID)
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return
	}
	c.client.Incr(ctx, key)
	c.client.Expire(ctx, key, unreadTTL)
}

// Invalidate drops the counter after any read-state mutation
func (c *Cache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, unreadKey(userID))
}
