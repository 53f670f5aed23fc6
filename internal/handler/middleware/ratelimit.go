package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps a token bucket per client IP. Idle clients are
// evicted after ttl so the map does not grow without bound.
type IPRateLimiter struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	r       rate.Limit
	b       int
	ttl     time.Duration
}

func NewIPRateLimiter(r rate.Limit, b int, ttl time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*clientLimiter),
		r:       r,
		b:       b,
		ttl:     ttl,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	if cl, exists := i.clients[ip]; exists {
		cl.lastSeen = now
		return cl.limiter
	}

	i.evictStaleLocked(now)

	limiter := rate.NewLimiter(i.r, i.b)
	i.clients[ip] = &clientLimiter{limiter: limiter, lastSeen: now}
	return limiter
}

func (i *IPRateLimiter) evictStaleLocked(now time.Time) {
	for ip, cl := range i.clients {
		if now.Sub(cl.lastSeen) > i.ttl {
			delete(i.clients, ip)
		}
	}
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(r rate.Limit, b int, ttl time.Duration) gin.HandlerFunc {
	limiter := NewIPRateLimiter(r, b, ttl)
	return func(c *gin.Context) {
		if !limiter.getLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}
		c.Next()
	}
}
