package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters hands out one token bucket per client IP and evicts buckets
// idle longer than limiterIdleTTL so the map stays bounded.
type ipLimiters struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

func newIPLimiters(perMinute int) *ipLimiters {
	return &ipLimiters{
		clients:   make(map[string]*clientLimiter),
		limit:     rate.Limit(float64(perMinute) / 60.0),
		burst:     perMinute,
		lastSweep: time.Now(),
	}
}

func (r *ipLimiters) get(ip string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.lastSweep) > time.Minute {
		r.sweep(now)
	}

	c, ok := r.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// sweep drops idle entries. Callers hold r.mu.
func (r *ipLimiters) sweep(now time.Time) {
	for ip, c := range r.clients {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(r.clients, ip)
		}
	}
	r.lastSweep = now
}

// RateLimit enforces a per-client-IP token bucket.
func RateLimit(perMinute int) gin.HandlerFunc {
	limiters := newIPLimiters(perMinute)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP(), time.Now()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
