package transport

import (
	"time"

	apperrors "github.com/anime-shed/page-inspector-go/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// MsgRateLimited is returned when a client exceeds its request budget
const MsgRateLimited = "Too many requests. Please try again later."

// clientLimiters hands out one token bucket per client IP. Idle buckets
// expire so the set does not grow without bound.
type clientLimiters struct {
	limit   rate.Limit
	burst   int
	buckets *cache.Cache
}

func newClientLimiters(rps float64, burst int) *clientLimiters {
	if burst < 1 {
		burst = 1
	}
	return &clientLimiters{
		limit:   rate.Limit(rps),
		burst:   burst,
		buckets: cache.New(10*time.Minute, 20*time.Minute),
	}
}

func (l *clientLimiters) get(client string) *rate.Limiter {
	if v, ok := l.buckets.Get(client); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	if err := l.buckets.Add(client, lim, cache.DefaultExpiration); err != nil {
		// another request created the bucket first
		if v, ok := l.buckets.Get(client); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// rateLimiter rejects requests over rps per client with 429. rps <= 0
// disables limiting.
func rateLimiter(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiters := newClientLimiters(rps, burst)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			respondError(c, apperrors.NewRateLimitError(MsgRateLimited))
			return
		}
		c.Next()
	}
}
