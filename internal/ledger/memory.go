package ledger

import (
	"context"
	"sync"

	yerrors "github.com/yanun0323/errors"
)

// MemoryStore keeps entries in process memory. It satisfies Store for
// runs without a database and for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  map[string]Entry
	sequence []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Insert(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.OrderID]; ok {
		return yerrors.Wrap(ErrDuplicateEntry, entry.OrderID)
	}
	s.entries[entry.OrderID] = entry
	s.sequence = append(s.sequence, entry.OrderID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, orderID string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[orderID]
	return entry, ok, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.sequence))
	for _, id := range s.sequence {
		out = append(out, s.entries[id])
	}
	return out, nil
}
