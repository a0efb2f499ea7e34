package middleware

import (
	"sync"
	"time"
)

// Defaults for InvalidAuthRateLimiter.
const (
	DefaultInvalidAuthLimit  = 5
	DefaultInvalidAuthWindow = time.Minute
)

// InvalidAuthRateLimiter limits requests carrying bad credentials per IP.
// Requests with valid or no credentials are never counted.
type InvalidAuthRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
	limit    int
	window   time.Duration
	now      func() time.Time
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewInvalidAuthRateLimiter allows limit invalid attempts per IP within window.
func NewInvalidAuthRateLimiter(limit int, window time.Duration) *InvalidAuthRateLimiter {
	rl := &InvalidAuthRateLimiter{
		attempts: make(map[string]*attemptInfo),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
	go rl.cleanup()
	return rl
}

// Allow records an invalid attempt from ip and reports whether it is still
// within the limit.
func (r *InvalidAuthRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	info, exists := r.attempts[ip]
	if !exists || now.Sub(info.firstAt) > r.window {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	if info.count >= r.limit {
		return false
	}
	info.count++
	return true
}

func (r *InvalidAuthRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * r.window)
	for range ticker.C {
		r.mu.Lock()
		now := r.now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > r.window {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
