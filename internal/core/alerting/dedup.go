package alerting

import (
	"sync"
	"time"
)

// dedupGuard remembers which (game, trigger set) pairs were already
// alerted so a repeated projection does not re-alert. Entries expire
// after ttl.
type dedupGuard struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
}

func newDedupGuard(ttl time.Duration) *dedupGuard {
	return &dedupGuard{ttl: ttl, seen: make(map[string]time.Time)}
}

func dedupKey(gameID, signature string) string {
	return gameID + ":" + signature
}

// claim marks key as alerted at now and reports whether the caller won it.
// A key already claimed within ttl is refused.
func (g *dedupGuard) claim(key string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if at, ok := g.seen[key]; ok && now.Sub(at) < g.ttl {
		return false
	}
	g.seen[key] = now
	return true
}

// release forgets a claim that did not lead to an alert.
func (g *dedupGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, key)
}

// sweep drops expired entries.
func (g *dedupGuard) sweep(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k, at := range g.seen {
		if now.Sub(at) >= g.ttl {
			delete(g.seen, k)
		}
	}
}
