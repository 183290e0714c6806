package web

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"enrichment-dash/internal/infra/logx"
)

// clientIdle is the shortest silence after which a client's bucket is
// dropped. The window is stretched to a full refill for slow limits.
const clientIdle = 10 * time.Minute

type clientEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// ClientLimiter keeps one token bucket per client address. Buckets of
// clients idle for longer than the idle window are swept.
type ClientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientEntry
	rps       rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewClientLimiter returns a limiter allowing rps requests per second per
// client. rps <= 0 returns nil, which allows everything.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = max(int(rps), 1)
	}
	return &ClientLimiter{
		clients: make(map[string]*clientEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    max(clientIdle, time.Duration(float64(burst)/rps*float64(time.Second))),
		now:     time.Now,
	}
}

func (cl *ClientLimiter) get(client string) (*rate.Limiter, time.Time) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	now := cl.now()
	if now.Sub(cl.lastSweep) >= cl.idle {
		cl.sweep(now)
	}
	e, ok := cl.clients[client]
	if !ok {
		e = &clientEntry{lim: rate.NewLimiter(cl.rps, cl.burst)}
		cl.clients[client] = e
	}
	e.seen = now
	return e.lim, now
}

// sweep drops idle clients. Callers hold mu.
func (cl *ClientLimiter) sweep(now time.Time) {
	for k, e := range cl.clients {
		if now.Sub(e.seen) >= cl.idle {
			delete(cl.clients, k)
		}
	}
	cl.lastSweep = now
	logx.Debugf("rate limiter tracks %d clients", len(cl.clients))
}

// Len reports how many clients currently hold a bucket.
func (cl *ClientLimiter) Len() int {
	if cl == nil {
		return 0
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.clients)
}

// Allow reports whether client may issue another request now.
func (cl *ClientLimiter) Allow(client string) bool {
	if cl == nil {
		return true
	}
	lim, now := cl.get(client)
	return lim.AllowN(now, 1)
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects requests over the client's budget with 429.
func RateLimit(cl *ClientLimiter, next http.Handler) http.Handler {
	if cl == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientKey(r)
		if !cl.Allow(client) {
			logx.Debugf("rate limited %s %s", client, r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
