package history

import (
	"context"
	"sync"

	"github.com/polyglot/api/internal/models"
)

// MemoryStore keeps history in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]models.HistoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]models.HistoryEntry)}
}

func (s *MemoryStore) Append(ctx context.Context, owner string, entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.entries[owner]
	next := make([]models.HistoryEntry, 0, min(len(current)+1, MaxEntries))
	next = append(next, entry)
	for _, e := range current {
		if len(next) == MaxEntries {
			break
		}
		if e.ID == entry.ID {
			continue
		}
		next = append(next, e)
	}
	s.entries[owner] = next
	return nil
}

func (s *MemoryStore) List(ctx context.Context, owner string, filter Filter) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return apply(s.entries[owner], filter), nil
}

func (s *MemoryStore) Delete(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.entries[owner]
	for i, e := range current {
		if e.ID == id {
			next := make([]models.HistoryEntry, 0, len(current)-1)
			next = append(next, current[:i]...)
			next = append(next, current[i+1:]...)
			s.entries[owner] = next
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Clear(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, owner)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
