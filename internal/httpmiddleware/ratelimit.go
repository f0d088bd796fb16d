// Package httpmiddleware holds gin middleware shared by all routes.
package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles requests per client IP with an in-memory token
// bucket. Good enough for a single instance; a multi-instance deployment
// would move the counters into Redis.
type RateLimiter struct {
	capacity  int
	perMinute int

	mu      sync.Mutex
	clients map[string]*clientBucket
}

type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per IP with bursts up to capacity.
func NewRateLimiter(capacity, perMinute int) *RateLimiter {
	if capacity <= 0 {
		capacity = perMinute
	}
	return &RateLimiter{
		capacity:  capacity,
		perMinute: perMinute,
		clients:   make(map[string]*clientBucket),
	}
}

// Middleware returns the gin handler enforcing the limit. Submissions and
// logins share one budget per IP; /metrics is registered ahead of this
// middleware and bypasses it.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.take(ip, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) take(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.clients[ip]
	if !ok {
		b = &clientBucket{tokens: float64(l.capacity)}
		l.clients[ip] = b
		l.prune(now)
	} else {
		refill := now.Sub(b.lastSeen).Minutes() * float64(l.perMinute)
		b.tokens += refill
		if b.tokens > float64(l.capacity) {
			b.tokens = float64(l.capacity)
		}
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// prune drops buckets idle long enough to have fully refilled. Called on new
// client entries only, so steady traffic pays nothing.
func (l *RateLimiter) prune(now time.Time) {
	for ip, b := range l.clients {
		if now.Sub(b.lastSeen) > 10*time.Minute {
			delete(l.clients, ip)
		}
	}
}
