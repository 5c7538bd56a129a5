// Package session provides the per-browsing-session correlation identifier
// attached to every tracking record. The id is unrelated to authentication
// sessions; it only groups records from the same tab.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const storeKey = "ad_session_id"

// Store is the persistence cell the id lives in for the lifetime of its
// scope. The HTTP adapter backs it with a cookie; tests and in-process
// callers use MemoryStore.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Manager lazily creates and then reuses one session id per store scope.
type Manager struct {
	store Store
	now   func() time.Time
}

// NewManager returns a Manager over the given store. A nil now defaults to
// time.Now.
func NewManager(store Store, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{store: store, now: now}
}

// ID returns the session identifier, generating and persisting one on first
// use. Subsequent calls within the same store scope return the identical
// value; there is no expiry.
func (m *Manager) ID() string {
	if id, ok := m.store.Get(storeKey); ok && id != "" {
		return id
	}
	id := fmt.Sprintf("%d-%s", m.now().UnixMilli(), uuid.NewString()[:8])
	m.store.Set(storeKey, id)
	return id
}

// MemoryStore is a Store held in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Clear drops everything, as an external storage wipe would.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
}
