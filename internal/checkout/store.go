package checkout

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle wizard session survives before the
// sweeper discards it.
const DefaultSessionTTL = 30 * time.Minute

// Store keeps the per-visitor wizard sessions in memory, keyed by the
// session cookie value. Sessions are ephemeral: nothing is persisted and an
// idle session is swept after its TTL.
type Store struct {
	ttl         time.Duration
	submitReset time.Duration
	logger      *slog.Logger

	mu      sync.RWMutex
	entries map[string]*storeEntry

	done      chan struct{}
	closeOnce sync.Once
}

type storeEntry struct {
	session  *Session
	lastSeen time.Time
}

// NewStore creates a session store and starts its sweep goroutine.
// submitReset overrides how long the per-session submitting flag holds;
// zero keeps the default.
func NewStore(ttl, submitReset time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if submitReset <= 0 {
		submitReset = DefaultSubmitReset
	}
	st := &Store{
		ttl:         ttl,
		submitReset: submitReset,
		logger:      logger,
		entries:     make(map[string]*storeEntry),
		done:        make(chan struct{}),
	}

	go st.sweep()

	return st
}

// Create registers a fresh closed session and returns its id.
func (st *Store) Create() (string, *Session) {
	id := uuid.NewString()
	session := NewSession()
	session.submitReset = st.submitReset

	st.mu.Lock()
	st.entries[id] = &storeEntry{session: session, lastSeen: time.Now()}
	st.mu.Unlock()

	return id, session
}

// Get returns the session for id and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	entry, ok := st.entries[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.session, true
}

// Delete removes the session for id.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.entries, id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.entries)
}

// Close stops the sweep goroutine. Safe to call more than once.
func (st *Store) Close() {
	st.closeOnce.Do(func() {
		close(st.done)
	})
}

// sweep periodically removes sessions idle past the TTL until Close.
func (st *Store) sweep() {
	ticker := time.NewTicker(st.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.removeStale(time.Now())
		case <-st.done:
			return
		}
	}
}

func (st *Store) removeStale(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, entry := range st.entries {
		if now.Sub(entry.lastSeen) > st.ttl {
			delete(st.entries, id)
			removed++
		}
	}

	if removed > 0 && st.logger != nil {
		st.logger.Debug("swept idle checkout sessions", "removed", removed, "remaining", len(st.entries))
	}
}
