package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomies/internal/domain"
)

func TestSaveAssignsIDs(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	first := &domain.Expense{Amount: decimal.NewFromInt(10), Description: "luz", UserID: 1, RoommateID: 2}
	second := &domain.Expense{Amount: decimal.NewFromInt(20), Description: "gás", UserID: 2, RoommateID: 1}
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	// Saving again keeps the existing ID and overwrites the record.
	first.Description = "conta de luz"
	require.NoError(t, store.Save(ctx, first))
	assert.Equal(t, uint(1), first.ID)

	saved, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "conta de luz", saved.Description)
}

func TestPendingBetweenFilters(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	matching := &domain.Expense{Amount: decimal.NewFromInt(10), Description: "luz", UserID: 1, RoommateID: 2}
	reversed := &domain.Expense{Amount: decimal.NewFromInt(10), Description: "gás", UserID: 2, RoommateID: 1}
	settled := &domain.Expense{Amount: decimal.NewFromInt(10), Description: "água", UserID: 1, RoommateID: 2, Status: domain.ExpenseSettled}
	other := &domain.Expense{Amount: decimal.NewFromInt(10), Description: "internet", UserID: 1, RoommateID: 3}
	for _, e := range []*domain.Expense{matching, reversed, settled, other} {
		require.NoError(t, store.Save(ctx, e))
	}

	got, err := store.PendingBetween(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, matching.ID, got[0].ID)
}
