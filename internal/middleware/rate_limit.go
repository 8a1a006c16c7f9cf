package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"

	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/logging"
)

// RateLimiter keeps one token bucket per client IP. The table is bounded by
// an LRU so a flood of distinct addresses cannot grow it without limit.
type RateLimiter struct {
	mu          sync.Mutex
	limiters    *lru.Cache
	rps         rate.Limit
	burst       int
	whitelisted map[string]bool
}

func NewRateLimiter(rps float64, burst, size int, whitelist ...string) *RateLimiter {
	cache, _ := lru.New(size)
	wl := make(map[string]bool, len(whitelist))
	for _, ip := range whitelist {
		wl[ip] = true
	}
	return &RateLimiter{
		limiters:    cache,
		rps:         rate.Limit(rps),
		burst:       burst,
		whitelisted: wl,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.limiters.Get(ip); exists {
		return limiter.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.limiters.Add(ip, limiter)
	return limiter
}

// Allow reports whether a request from ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.whitelisted[ip] {
		return true
	}
	return rl.getLimiter(ip).Allow()
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.Allow(ip) {
			logging.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			common.RespondError(w, time.Now(), nil, constants.GetErrorMessage(constants.ErrCodeRateLimited), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
