// Package storage provides the gorm-backed persistence collaborator consumed
// by the ledger engine.
package storage

import (
	"context"

	"gorm.io/gorm"

	"roomies/internal/domain"
	"roomies/internal/ledger"
)

// ExpenseStore implements ledger.ExpenseStore on top of a gorm database.
type ExpenseStore struct {
	db *gorm.DB
}

// NewExpenseStore creates a store over the given database handle.
func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

// PendingBetween returns every pending expense paid by payerID and shared with
// roommateID.
func (s *ExpenseStore) PendingBetween(ctx context.Context, payerID, roommateID uint) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND roommate_id = ? AND status = ?", payerID, roommateID, domain.ExpensePending).
		Find(&expenses).Error
	return expenses, err
}

// Save persists the expense, creating it when the ID is zero.
func (s *ExpenseStore) Save(ctx context.Context, e *domain.Expense) error {
	return s.db.WithContext(ctx).Save(e).Error
}

// Compile-time check: ExpenseStore satisfies the engine's collaborator interface.
var _ ledger.ExpenseStore = (*ExpenseStore)(nil)
