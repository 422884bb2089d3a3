package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/archive-backend/pkg/ctxutil"
)

// Allower decides whether one more request for key fits the quota.
type Allower interface {
	Allow(key string) bool
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Visitors is an in-process token bucket per client key. Call Stop on
// shutdown.
type Visitors struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewVisitors allows perMinute requests per key with the given burst.
// Keys idle for longer than cleanupInterval are forgotten.
func NewVisitors(perMinute, burst int, cleanupInterval time.Duration) *Visitors {
	if burst < 1 {
		burst = 1
	}
	v := &Visitors{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		idle:     cleanupInterval,
		stop:     make(chan struct{}),
	}
	go v.cleanup(cleanupInterval)
	return v
}

// Allow implements Allower.
func (v *Visitors) Allow(key string) bool {
	v.mu.Lock()
	vis, ok := v.visitors[key]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(v.limit, v.burst)}
		v.visitors[key] = vis
	}
	vis.lastSeen = time.Now()
	v.mu.Unlock()

	return vis.limiter.Allow()
}

// Stop terminates the background cleanup goroutine.
func (v *Visitors) Stop() {
	v.stopOnce.Do(func() { close(v.stop) })
}

func (v *Visitors) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-v.stop:
			return
		case <-ticker.C:
			v.mu.Lock()
			for key, vis := range v.visitors {
				if time.Since(vis.lastSeen) > v.idle {
					delete(v.visitors, key)
				}
			}
			v.mu.Unlock()
		}
	}
}

// RateLimit rejects requests over the limiter's quota with 429 and a
// Retry-After of retryAfter. The key is the client address RequestID
// resolved, or the peer address when RequestID did not run.
func RateLimit(limiter Allower, retryAfter time.Duration) Middleware {
	seconds := strconv.Itoa(max(1, int(math.Ceil(retryAfter.Seconds()))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ctxutil.RemoteAddrFromCtx(r.Context())
			if key == "" {
				key = PeerIP(r)
			}
			if !limiter.Allow(key) {
				w.Header().Set("Retry-After", seconds)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many requests"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
