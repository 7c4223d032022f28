package http

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// sessionLimiter bounds per-session request rates with auto-cleanup of
// idle sessions.
type sessionLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newSessionLimiter(requestsPerMin int) *sessionLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &sessionLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,
			nil,
			time.Minute*5,
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: burst,
	}
}

func (sl *sessionLimiter) Allow(sessionID string) bool {
	limiter, ok := sl.limiters.Get(sessionID)
	if !ok {
		limiter = rate.NewLimiter(sl.rate, sl.burst)
		sl.limiters.Add(sessionID, limiter)
	}
	return limiter.Allow()
}
