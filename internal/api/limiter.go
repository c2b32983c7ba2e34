package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const minLimiterIdle = time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func (e *limiterEntry) touch(now time.Time) {
	e.mu.Lock()
	e.lastSeen = now
	e.mu.Unlock()
}

func (e *limiterEntry) idleSince(now time.Time) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.Sub(e.lastSeen)
}

// rateLimiter is a per-client token bucket keyed by remote IP.
type rateLimiter struct {
	limiters sync.Map // map[string]*limiterEntry
	rps      float64
	burst    int
	now      func() time.Time
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &rateLimiter{rps: rps, burst: burst, now: time.Now}
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	now := l.now()
	if v, ok := l.limiters.Load(key); ok {
		entry := v.(*limiterEntry)
		entry.touch(now)
		return entry.limiter
	}

	entry := &limiterEntry{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst), lastSeen: now}
	actual, loaded := l.limiters.LoadOrStore(key, entry)
	if loaded {
		existing := actual.(*limiterEntry)
		existing.touch(now)
		return existing.limiter
	}
	return entry.limiter
}

// idleAfter is how long an untouched bucket takes to refill completely.
// Dropping it earlier would hand a throttled client a fresh burst.
func (l *rateLimiter) idleAfter() time.Duration {
	if l.rps <= 0 {
		return minLimiterIdle
	}
	refill := time.Duration(float64(l.burst) / l.rps * float64(time.Second))
	if refill < minLimiterIdle {
		return minLimiterIdle
	}
	return refill
}

// Sweep drops buckets that have been idle long enough to be full again.
func (l *rateLimiter) Sweep(now time.Time) int {
	idle := l.idleAfter()
	removed := 0
	l.limiters.Range(func(key, value any) bool {
		if value.(*limiterEntry).idleSince(now) >= idle {
			l.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

func (l *rateLimiter) size() int {
	n := 0
	l.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// StartJanitor sweeps on every interval until ctx is done.
func (l *rateLimiter) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Sweep(now)
		}
	}
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.rps > 0 && !l.getLimiter(clientKey(r)).Allow() {
			tooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey is the peer address. It only reflects forwarding headers when
// the router runs behind a trusted proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
