package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/focus-space/FS-BookingService/internal/wizard"
)

// MemoryStore keeps wizard sessions in process memory. Used in tests and in
// single-node deployments where Redis is disabled. Sessions are stored as
// JSON to keep the serialization path identical to the Redis store.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*wizard.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}

	var w wizard.Wizard
	if err := json.Unmarshal(entry.data, &w); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal session: %v", ErrInternal, err)
	}
	return &w, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, w *wizard.Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal session: %v", ErrInternal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{data: data, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
