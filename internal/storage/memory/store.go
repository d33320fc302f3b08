// Package memory is an in-memory implementation of ledger.ExpenseStore.
// It assigns IDs like the database would and is safe for concurrent use.
package memory

import (
	"context"
	"sync"

	"roomies/internal/domain"
	"roomies/internal/ledger"
)

// ExpenseStore keeps expenses in a map guarded by a mutex.
type ExpenseStore struct {
	mu       sync.Mutex
	nextID   uint
	expenses map[uint]domain.Expense
}

// NewExpenseStore creates an empty store.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{
		nextID:   1,
		expenses: make(map[uint]domain.Expense),
	}
}

// PendingBetween returns every pending expense paid by payerID and shared with
// roommateID.
func (s *ExpenseStore) PendingBetween(ctx context.Context, payerID, roommateID uint) ([]domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Expense
	for _, e := range s.expenses {
		if e.UserID == payerID && e.RoommateID == roommateID && e.Status == domain.ExpensePending {
			result = append(result, e)
		}
	}
	return result, nil
}

// Save stores a copy of the expense, assigning an ID when it has none.
func (s *ExpenseStore) Save(ctx context.Context, e *domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == 0 {
		e.ID = s.nextID
		s.nextID++
	}
	s.expenses[e.ID] = *e
	return nil
}

// Get returns the stored expense by ID.
func (s *ExpenseStore) Get(id uint) (domain.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	return e, ok
}

// Compile-time check: ExpenseStore satisfies the engine's collaborator interface.
var _ ledger.ExpenseStore = (*ExpenseStore)(nil)
