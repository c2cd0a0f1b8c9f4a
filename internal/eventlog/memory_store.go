package eventlog

import (
	"context"
	"sync"

	"github.com/jharju/stm/pkg/api"
)

// MemoryStore is a simple, goroutine-safe Store backed by a map.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[uint64][]api.TxEvent
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events: make(map[uint64][]api.TxEvent),
	}
}

// Ensure MemoryStore implements the interface.
var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) AppendEvent(ctx context.Context, ev api.TxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[ev.TxID] = append(s.events[ev.TxID], ev)
	return nil
}

func (s *MemoryStore) ListEvents(ctx context.Context, txID uint64) ([]api.TxEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	evs := s.events[txID]
	out := make([]api.TxEvent, len(evs))
	copy(out, evs)
	return out, nil
}
