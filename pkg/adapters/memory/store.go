package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// Store implements ports.OperationStore in memory.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	recs map[string]*domain.OperationRecord
}

// NewStore creates a new in-memory operation store.
func NewStore() *Store {
	return &Store{recs: make(map[string]*domain.OperationRecord)}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, rec *domain.OperationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Copy to ensure isolation, similar to serialization.
	copied := *rec
	s.recs[rec.ID] = &copied
	return nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.OperationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, domain.ErrOperationNotFound
	}
	copied := *rec
	return &copied, nil
}

// List returns all records, most recent first (by StartedAt).
func (s *Store) List(ctx context.Context) ([]*domain.OperationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.OperationRecord, 0, len(s.recs))
	for _, rec := range s.recs {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}
