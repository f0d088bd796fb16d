package attendance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"classtrack/internal/session"
)

// Cache keeps the active session per class in redis so the faculty dashboard
// poll does not hit Postgres on every refresh. Entries carry a TTL equal to
// the remaining session lifetime, so redis forgets codes as they expire.
type Cache struct {
	client *redis.Client
}

// NewCache wraps a redis client; a nil client yields a no-op cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func cacheKey(classID string) string {
	return "classtrack:session:" + classID
}

// Get returns the cached session for a class, or nil on miss or any redis
// error. The cache is advisory; failures fall through to the database.
func (c *Cache) Get(ctx context.Context, classID string) *session.Session {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, cacheKey(classID)).Bytes()
	if err != nil {
		return nil
	}
	var s session.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// Put stores the session with a TTL equal to its remaining validity.
func (c *Cache) Put(ctx context.Context, s session.Session) {
	if c == nil || c.client == nil {
		return
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(s.ClassID), raw, ttl)
}
