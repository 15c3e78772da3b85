// Package memory provides an in-memory ledger store, used in tests and as
// the fallback when the service runs without a database.
package memory

import (
	"context"
	"sync"

	"github.com/splitledger/splitledger/internal/ledger"
)

// Store keeps expense documents in process memory, grouped by group id.
type Store struct {
	mu     sync.RWMutex
	groups map[string]map[string]ledger.ExpenseRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{groups: make(map[string]map[string]ledger.ExpenseRecord)}
}

// LoadExpenses returns every stored record for the group.
func (s *Store) LoadExpenses(ctx context.Context, groupID string) ([]ledger.ExpenseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]ledger.ExpenseRecord, 0, len(s.groups[groupID]))
	for _, rec := range s.groups[groupID] {
		records = append(records, rec)
	}
	return records, nil
}

// SaveExpense upserts a single record.
func (s *Store) SaveExpense(ctx context.Context, groupID string, rec ledger.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.groups[groupID] == nil {
		s.groups[groupID] = make(map[string]ledger.ExpenseRecord)
	}
	s.groups[groupID][rec.ID] = rec
	return nil
}

// DeleteExpense removes the record with the given id; unknown ids are a no-op.
func (s *Store) DeleteExpense(ctx context.Context, groupID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.groups[groupID], id)
	return nil
}
