package storefront

import (
	"context"
	"sync"
	"time"
)

// restoreTimeout bounds the session restore of a new client. The restore ignores
// cancellation of the request that triggered it.
const restoreTimeout = 10 * time.Second

// Registry hands out one Client per client id, creating it on first use.
type Registry struct {
	deps Deps
	now  func() time.Time

	mu       sync.Mutex
	clients  map[string]*Client
	lastSeen map[string]time.Time
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:     deps,
		now:      time.Now,
		clients:  make(map[string]*Client),
		lastSeen: make(map[string]time.Time),
	}
}

// Get returns the client for id. A new client restores any persisted session from its namespace.
func (r *Registry) Get(ctx context.Context, id string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
		c = NewClient(restoreCtx, id, r.deps)
		cancel()
		r.clients[id] = c
		r.deps.Logger.Debug().Str("client_id", id).Msg("Client created")
	}
	r.lastSeen[id] = r.now()
	return c
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Evict drops clients idle for longer than ttl. Their persisted session and cart remain,
// so a returning client is rebuilt from storage.
func (r *Registry) Evict(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	evicted := 0
	for id, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			delete(r.clients, id)
			delete(r.lastSeen, id)
			evicted++
		}
	}
	return evicted
}

// RunEviction calls Evict every interval until ctx is done.
func (r *Registry) RunEviction(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(ttl); n > 0 {
				r.deps.Logger.Info().Int("evicted", n).Msg("Idle clients evicted")
			}
		}
	}
}
