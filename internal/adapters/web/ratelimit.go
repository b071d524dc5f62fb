package web

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Per-minute budgets for the AI endpoints.
const (
	generatePerMinute = 5
	revisePerMinute   = 10
)

const limiterIdleEviction = 10 * time.Minute

// keyedLimiter hands out one token bucket per caller key. Idle entries
// are evicted lazily on each lookup.
type keyedLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	lastPurge time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newKeyedLimiter(perMinute int) *keyedLimiter {
	return &keyedLimiter{
		entries:   make(map[string]*limiterEntry),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		lastPurge: time.Now(),
	}
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := time.Now()
	if now.Sub(k.lastPurge) > limiterIdleEviction {
		for id, e := range k.entries {
			if now.Sub(e.lastSeen) > limiterIdleEviction {
				delete(k.entries, id)
			}
		}
		k.lastPurge = now
	}

	e, ok := k.entries[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(k.limit, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = now
	return e.lim.Allow()
}

// limiterKey identifies the caller: the authenticated user id when
// available, otherwise the remote IP.
func limiterKey(r *http.Request) string {
	if claims := authFromContext(r.Context()); claims != nil {
		return "user_" + claims.UserID
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return "ip_" + host
	}
	return "ip_" + r.RemoteAddr
}

// RateLimit rejects callers over budget with HTTP 429. The outcome is a
// pure request-rate decision and says nothing about quote state.
func RateLimit(limiter *keyedLimiter, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(limiterKey(r)) {
				writeError(w, r, message, "TOO_MANY_REQUESTS", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
