package middleware

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// RateLimiter rejects requests above a global token-bucket rate with 429.
type RateLimiter struct {
	limiter  *rate.Limiter
	onReject func(r *http.Request)
}

// NewRateLimiter creates a limiter allowing rps requests per second with the
// given burst. A burst below 1 is raised to ceil(rps).
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = int(math.Ceil(rps))
		if burst < 1 {
			burst = 1
		}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// OnReject sets a hook called for every rejected request.
func (l *RateLimiter) OnReject(fn func(r *http.Request)) *RateLimiter {
	l.onReject = fn
	return l
}

// Handler returns the rate limiting middleware.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter.Allow() {
			if l.onReject != nil {
				l.onReject(r)
			}
			retry := 1
			if lim := float64(l.limiter.Limit()); lim > 0 && lim < 1 {
				retry = int(math.Ceil(1 / lim))
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
