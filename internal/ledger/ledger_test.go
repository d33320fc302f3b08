package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomies/internal/domain"
	"roomies/internal/ledger"
	"roomies/internal/storage/memory"
)

const (
	joao  uint = 1
	maria uint = 2
)

// addExpense stores a pending expense paid by payer and shared with roommate.
func addExpense(t *testing.T, store *memory.ExpenseStore, payer, roommate uint, amount string) *domain.Expense {
	t.Helper()
	e := &domain.Expense{
		Amount:      decimal.RequireFromString(amount),
		Description: "shared cost",
		Category:    domain.ExpenseGroceries,
		UserID:      payer,
		RoommateID:  roommate,
	}
	require.NoError(t, store.Save(context.Background(), e))
	return e
}

func TestSplitHalvesAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"100.00", "50"},
		{"50.00", "25"},
		{"0.01", "0.005"},
		{"100.01", "50.005"},
		{"1234.56", "617.28"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			e := &domain.Expense{Amount: decimal.RequireFromString(tt.amount)}
			got := ledger.Split(e)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"Split(%s) = %s, want %s", tt.amount, got, tt.want)
			// Doubling the share recovers the original amount exactly
			assert.True(t, got.Mul(decimal.NewFromInt(2)).Equal(e.Amount))
		})
	}
}

func TestBalanceBetween(t *testing.T) {
	ctx := context.Background()

	t.Run("no pending expenses means zero", func(t *testing.T) {
		store := memory.NewExpenseStore()
		engine := ledger.NewEngine(store)

		balance, err := engine.BalanceBetween(ctx, joao, maria)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("settled expenses contribute nothing", func(t *testing.T) {
		store := memory.NewExpenseStore()
		engine := ledger.NewEngine(store)

		e := addExpense(t, store, joao, maria, "200.00")
		require.NoError(t, engine.Settle(ctx, e, &domain.User{ID: maria}))

		balance, err := engine.BalanceBetween(ctx, joao, maria)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("reversed roles carry opposite signs", func(t *testing.T) {
		store := memory.NewExpenseStore()
		engine := ledger.NewEngine(store)

		// João pays 100 shared with Maria, Maria pays 50 shared with João:
		// Maria owes 50, João owes 25, so João is owed 25 net.
		addExpense(t, store, joao, maria, "100.00")
		addExpense(t, store, maria, joao, "50.00")

		balance, err := engine.BalanceBetween(ctx, joao, maria)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("25.00")), "got %s", balance)
	})

	t.Run("anti-symmetry", func(t *testing.T) {
		store := memory.NewExpenseStore()
		engine := ledger.NewEngine(store)

		addExpense(t, store, joao, maria, "100.00")
		addExpense(t, store, joao, maria, "33.33")
		addExpense(t, store, maria, joao, "50.00")
		addExpense(t, store, maria, joao, "0.01")

		ab, err := engine.BalanceBetween(ctx, joao, maria)
		require.NoError(t, err)
		ba, err := engine.BalanceBetween(ctx, maria, joao)
		require.NoError(t, err)
		assert.True(t, ab.Equal(ba.Neg()), "balance(A,B)=%s, balance(B,A)=%s", ab, ba)
	})

	t.Run("settling removes the expense from the balance", func(t *testing.T) {
		store := memory.NewExpenseStore()
		engine := ledger.NewEngine(store)

		paidByJoao := addExpense(t, store, joao, maria, "100.00")
		addExpense(t, store, maria, joao, "50.00")

		require.NoError(t, engine.Settle(ctx, paidByJoao, &domain.User{ID: maria}))

		// Only Maria's expense remains pending, so João now owes 25.
		balance, err := engine.BalanceBetween(ctx, joao, maria)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("-25.00")), "got %s", balance)
	})

	t.Run("expenses with other users are excluded", func(t *testing.T) {
		store := memory.NewExpenseStore()
		engine := ledger.NewEngine(store)

		addExpense(t, store, joao, maria, "80.00")
		addExpense(t, store, joao, 3, "500.00")
		addExpense(t, store, 3, maria, "500.00")

		balance, err := engine.BalanceBetween(ctx, joao, maria)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("40.00")), "got %s", balance)
	})
}

func TestSettle(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps status, time and actor", func(t *testing.T) {
		store := memory.NewExpenseStore()
		now := time.Date(2025, 9, 24, 16, 21, 0, 0, time.UTC)
		engine := ledger.NewEngine(store, ledger.WithClock(func() time.Time { return now }))

		e := addExpense(t, store, joao, maria, "95.00")
		require.NoError(t, engine.Settle(ctx, e, &domain.User{ID: maria}))

		saved, ok := store.Get(e.ID)
		require.True(t, ok)
		assert.Equal(t, domain.ExpenseSettled, saved.Status)
		require.NotNil(t, saved.SettledAt)
		assert.True(t, saved.SettledAt.Equal(now))
		require.NotNil(t, saved.SettledByID)
		assert.Equal(t, maria, *saved.SettledByID)
	})

	t.Run("settling twice re-stamps with the second caller and time", func(t *testing.T) {
		store := memory.NewExpenseStore()
		first := time.Date(2025, 9, 24, 10, 0, 0, 0, time.UTC)
		second := first.Add(3 * time.Hour)
		now := first
		engine := ledger.NewEngine(store, ledger.WithClock(func() time.Time { return now }))

		e := addExpense(t, store, joao, maria, "95.00")
		require.NoError(t, engine.Settle(ctx, e, &domain.User{ID: maria}))

		now = second
		require.NoError(t, engine.Settle(ctx, e, &domain.User{ID: joao}))

		saved, ok := store.Get(e.ID)
		require.True(t, ok)
		assert.Equal(t, domain.ExpenseSettled, saved.Status)
		assert.True(t, saved.SettledAt.Equal(second))
		assert.Equal(t, joao, *saved.SettledByID)
	})

	t.Run("settle-once option rejects a second settlement", func(t *testing.T) {
		store := memory.NewExpenseStore()
		engine := ledger.NewEngine(store, ledger.SettleOnce())

		e := addExpense(t, store, joao, maria, "95.00")
		require.NoError(t, engine.Settle(ctx, e, &domain.User{ID: maria}))

		err := engine.Settle(ctx, e, &domain.User{ID: joao})
		assert.ErrorIs(t, err, ledger.ErrAlreadySettled)

		// First settlement's audit fields survive.
		saved, _ := store.Get(e.ID)
		assert.Equal(t, maria, *saved.SettledByID)
	})

	t.Run("invalid record fails validation before saving", func(t *testing.T) {
		store := memory.NewExpenseStore()
		engine := ledger.NewEngine(store)

		e := &domain.Expense{
			Amount:      decimal.Zero,
			Description: "ab",
			UserID:      joao,
			RoommateID:  maria,
		}
		require.NoError(t, store.Save(ctx, e))

		err := engine.Settle(ctx, e, &domain.User{ID: maria})
		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, domain.ExpensePending, e.Status)
	})
}
