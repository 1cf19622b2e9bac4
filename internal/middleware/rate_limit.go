package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

const (
	requestsPerSecond = 5
	burstSize         = 20
)

// limiterPool hands out one token bucket per client IP. Buckets live for the
// process lifetime; the scaffold's client population is small enough that
// eviction is not worth the bookkeeping.
type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLimiterPool() *limiterPool {
	return &limiterPool{limiters: make(map[string]*rate.Limiter)}
}

func (p *limiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.limiters[ip]
	if !ok {
		l = rate.NewLimiter(requestsPerSecond, burstSize)
		p.limiters[ip] = l
	}
	return l
}

var defaultPool = newLimiterPool()

// exempt from rate limiting: compose-internal callers and the waitfor tool
// hammer the health endpoints during startup.
var exemptIPs = map[string]bool{
	"127.0.0.1": true,
}

// RateLimit applies a per-IP token bucket. Health endpoints are expected to
// be polled a few times per second at most; anything past the burst is a
// misbehaving client.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, _ := net.SplitHostPort(r.RemoteAddr)
		if exemptIPs[ip] {
			next.ServeHTTP(w, r)
			return
		}

		if !defaultPool.get(ip).Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
