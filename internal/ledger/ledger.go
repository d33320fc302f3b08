// Package ledger owns the domain rules for splitting shared expenses between
// two roommates and reconciling them into a net balance.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"roomies/internal/domain"
)

// ErrAlreadySettled is returned by Settle when the engine was built with
// SettleOnce and the expense is already settled.
var ErrAlreadySettled = errors.New("expense is already settled")

// ExpenseStore is the persistence collaborator the engine needs: a
// predicate-scoped read and a single-record save. Satisfied by the gorm-backed
// store and by the in-memory store used in tests.
type ExpenseStore interface {
	// PendingBetween returns every pending expense paid by payerID and shared
	// with roommateID.
	PendingBetween(ctx context.Context, payerID, roommateID uint) ([]domain.Expense, error)
	// Save persists the expense, assigning an ID on first save.
	Save(ctx context.Context, e *domain.Expense) error
}

// Engine computes splits, performs settlements, and aggregates balances.
// It holds no state beyond its collaborators; every method is request-scoped.
type Engine struct {
	store      ExpenseStore
	settleOnce bool
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// SettleOnce rejects settling an expense that is already settled, instead of
// re-stamping settled_at/settled_by with the second caller and time.
func SettleOnce() Option {
	return func(e *Engine) { e.settleOnce = true }
}

// WithClock overrides the settlement timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine backed by the given store.
func NewEngine(store ExpenseStore, opts ...Option) *Engine {
	e := &Engine{store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Split returns one roommate's share of the expense: half of the total.
func Split(e *domain.Expense) decimal.Decimal {
	return e.SplitAmount()
}

// Settle marks the expense settled by actingUser and persists it. The caller
// is responsible for scoping: actingUser must already be the payer or the
// roommate on the expense. Without SettleOnce, settling a settled expense
// re-stamps the audit fields.
func (g *Engine) Settle(ctx context.Context, e *domain.Expense, actingUser *domain.User) error {
	if g.settleOnce && e.Status == domain.ExpenseSettled {
		return ErrAlreadySettled
	}
	if err := e.Validate(); err != nil {
		return err
	}
	now := g.now()
	e.Status = domain.ExpenseSettled
	e.SettledAt = &now
	e.SettledByID = &actingUser.ID
	return g.store.Save(ctx, e)
}

// BalanceBetween returns the net amount owed between two users over all
// pending shared expenses. A positive result means userB owes userA that
// amount; negative means the reverse; zero means settled up. Settled expenses
// contribute nothing.
func (g *Engine) BalanceBetween(ctx context.Context, userA, userB uint) (decimal.Decimal, error) {
	owedToA, err := g.owedTo(ctx, userA, userB)
	if err != nil {
		return decimal.Zero, err
	}
	owedToB, err := g.owedTo(ctx, userB, userA)
	if err != nil {
		return decimal.Zero, err
	}
	return owedToA.Sub(owedToB), nil
}

// owedTo sums the payer's half over every pending expense the payer covered
// for the roommate.
func (g *Engine) owedTo(ctx context.Context, payerID, roommateID uint) (decimal.Decimal, error) {
	expenses, err := g.store.PendingBetween(ctx, payerID, roommateID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(Split(&expenses[i]))
	}
	return total, nil
}
