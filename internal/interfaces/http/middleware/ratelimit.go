// Per-client rate limiting on golang.org/x/time/rate.  Each client key gets
// its own token bucket; idle buckets are evicted by a background sweep.
// Limits can be changed at runtime with Update, which the apiserver calls on
// configuration reload.
package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// ErrorWriter renders an error response.
type ErrorWriter func(w http.ResponseWriter, err error)

// RateLimitConfig holds configuration for the rate limit middleware.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	// KeyFunc extracts the client key. Defaults to the remote IP.
	KeyFunc func(r *http.Request) string
	// SkipPaths bypass the limiter.
	SkipPaths []string
	// IdleTTL is how long an unused bucket is kept.
	IdleTTL time.Duration
}

// DefaultRateLimitConfig returns 120 requests per minute with a burst of 20.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 120,
		Burst:             20,
		SkipPaths:         []string{"/healthz", "/readyz", "/metrics"},
		IdleTTL:           10 * time.Minute,
	}
}

// ClientIP returns the host part of RemoteAddr.  chi's RealIP middleware has
// already replaced RemoteAddr with the forwarded address when one is present.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter and starts its eviction loop.  Call Stop
// to end the loop.
func NewRateLimiter(requestsPerMinute, burst int, idleTTL time.Duration) *RateLimiter {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	l := &RateLimiter{
		visitors: make(map[string]*visitor),
		idleTTL:  idleTTL,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	l.setLimits(requestsPerMinute, burst)
	go l.evictLoop()
	return l
}

func (l *RateLimiter) setLimits(requestsPerMinute, burst int) {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	l.limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	l.burst = burst
}

// Update changes the limits for every existing and future client.
func (l *RateLimiter) Update(requestsPerMinute, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLimits(requestsPerMinute, burst)
	for _, v := range l.visitors {
		v.limiter.SetLimit(l.limit)
		v.limiter.SetBurst(l.burst)
	}
}

// Allow consumes one token for key.  When it fails it also returns how long
// the client should wait.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	lim := v.limiter
	l.mu.Unlock()

	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Limit returns the current burst size.
func (l *RateLimiter) Limit() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.burst
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *RateLimiter) evictLoop() {
	ticker := time.NewTicker(l.idleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evict()
		case <-l.stop:
			return
		}
	}
}

func (l *RateLimiter) evict() {
	cutoff := l.now().Add(-l.idleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
		}
	}
}

// Stop ends the eviction loop.  Safe to call more than once.
func (l *RateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// RateLimit returns middleware that answers 429 with a Retry-After header
// once a client exhausts its bucket.  metrics and onError may be nil.
func RateLimit(limiter *RateLimiter, config RateLimitConfig, metrics *prometheus.AppMetrics, onError ErrorWriter) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}
	keyFunc := config.KeyFunc
	if keyFunc == nil {
		keyFunc = ClientIP
	}
	if onError == nil {
		onError = writePlainError
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			allowed, wait := limiter.Allow(keyFunc(r))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			if !allowed {
				retryAfter := int(wait.Round(time.Second).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				prometheus.RecordRateLimited(metrics)
				onError(w, errors.RateLimit("rate limit exceeded, please retry later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writePlainError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(errors.HTTPStatusForCode(code))
	_, _ = w.Write([]byte(`{"error":{"code":"` + string(code) + `","message":"request rejected"}}`))
}

//Personal.AI order the ending
