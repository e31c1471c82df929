package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const contactLimiterStaleAfter = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter gives every client address its own token bucket.
type ipRateLimiter struct {
	mu            sync.Mutex
	limiters      map[string]*ipLimiter
	rate          rate.Limit
	burst         int
	opCount       int
	cleanupEveryN int
}

func newIPRateLimiter(r rate.Limit, burst int) *ipRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &ipRateLimiter{
		limiters:      make(map[string]*ipLimiter),
		rate:          r,
		burst:         burst,
		cleanupEveryN: 64,
	}
}

// Allow spends one token from ip's bucket.
func (l *ipRateLimiter) Allow(ip string, now time.Time) bool {
	if l == nil {
		return true
	}
	return l.getLimiter(ip, now).AllowN(now, 1)
}

func (l *ipRateLimiter) getLimiter(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.opCount++
	if l.opCount%l.cleanupEveryN == 0 {
		for key, entry := range l.limiters {
			if now.Sub(entry.lastSeen) > contactLimiterStaleAfter {
				delete(l.limiters, key)
			}
		}
	}

	if entry, ok := l.limiters[ip]; ok {
		entry.lastSeen = now
		return entry.limiter
	}
	limiter := rate.NewLimiter(l.rate, l.burst)
	l.limiters[ip] = &ipLimiter{limiter: limiter, lastSeen: now}
	return limiter
}
