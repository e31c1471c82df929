package server

import (
	"sync"
	"time"
)

// authFailureLimiter blocks a client for a while after too many failed
// admin logins inside one window.
type authFailureLimiter struct {
	mu            sync.Mutex
	clients       map[string]authFailureEntry
	maxFailures   int
	window        time.Duration
	blockedFor    time.Duration
	staleAfter    time.Duration
	opCount       int
	cleanupEveryN int
}

type authFailureEntry struct {
	failures       int
	firstFailureAt time.Time
	blockedUntil   time.Time
	lastSeenAt     time.Time
}

func newAuthFailureLimiter(maxFailures int, window, blockedFor time.Duration) *authFailureLimiter {
	if maxFailures <= 0 || window <= 0 || blockedFor <= 0 {
		return nil
	}
	staleAfter := max(window, blockedFor) * 2
	if staleAfter < 10*time.Minute {
		staleAfter = 10 * time.Minute
	}
	return &authFailureLimiter{
		clients:       make(map[string]authFailureEntry),
		maxFailures:   maxFailures,
		window:        window,
		blockedFor:    blockedFor,
		staleAfter:    staleAfter,
		cleanupEveryN: 64,
	}
}

// Allow reports whether key may try to log in at now.
func (l *authFailureLimiter) Allow(key string, now time.Time) bool {
	if l == nil || key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.clients[key]
	entry.lastSeenAt = now
	blocked := !entry.blockedUntil.IsZero() && now.Before(entry.blockedUntil)
	if !blocked {
		entry.blockedUntil = time.Time{}
		if !entry.firstFailureAt.IsZero() && now.Sub(entry.firstFailureAt) > l.window {
			entry.failures = 0
			entry.firstFailureAt = time.Time{}
		}
	}
	l.clients[key] = entry
	l.maybeCleanupLocked(now)

	return !blocked
}

// RegisterFailure counts one failed attempt and starts a block once the
// window holds maxFailures of them.
func (l *authFailureLimiter) RegisterFailure(key string, now time.Time) {
	if l == nil || key == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.clients[key]
	if entry.firstFailureAt.IsZero() || now.Sub(entry.firstFailureAt) > l.window {
		entry.failures = 0
		entry.firstFailureAt = now
	}
	entry.failures++
	if entry.failures >= l.maxFailures {
		entry.blockedUntil = now.Add(l.blockedFor)
		entry.failures = 0
		entry.firstFailureAt = time.Time{}
	}
	entry.lastSeenAt = now
	l.clients[key] = entry
	l.maybeCleanupLocked(now)
}

// Reset forgets key after a successful login.
func (l *authFailureLimiter) Reset(key string) {
	if l == nil || key == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.clients, key)
}

func (l *authFailureLimiter) maybeCleanupLocked(now time.Time) {
	l.opCount++
	if l.opCount%l.cleanupEveryN != 0 {
		return
	}
	for key, entry := range l.clients {
		if entry.lastSeenAt.IsZero() || now.Sub(entry.lastSeenAt) > l.staleAfter {
			delete(l.clients, key)
		}
	}
}
