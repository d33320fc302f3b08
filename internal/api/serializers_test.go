package api

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomies/internal/domain"
)

func TestNewExpenseResponse(t *testing.T) {
	joao := domain.User{ID: 1, Name: "João Silva", Email: "joao@roommate.com"}
	maria := domain.User{ID: 2, Name: "Maria Santos", Email: "maria@roommate.com"}
	created := time.Date(2025, 9, 24, 8, 30, 0, 0, time.UTC)

	e := domain.Expense{
		ID:          10,
		Amount:      decimal.RequireFromString("127.80"),
		Description: "Compras no supermercado",
		Category:    domain.ExpenseGroceries,
		Status:      domain.ExpensePending,
		UserID:      joao.ID,
		User:        joao,
		RoommateID:  maria.ID,
		Roommate:    maria,
		CreatedAt:   created,
	}

	resp := NewExpenseResponse(&e)
	assert.Equal(t, uint(10), resp.ID)
	assert.Equal(t, "R$ 127,80", resp.Amount.Formatted)
	assert.InDelta(t, 127.80, resp.Amount.Raw, 0.001)
	assert.Equal(t, "R$ 63,90", resp.YourShare.Formatted)
	assert.Equal(t, "groceries", resp.Category)
	assert.Equal(t, "Groceries", resp.CategoryDisplay)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Pending", resp.StatusDisplay)
	assert.Equal(t, "24/09/2025", resp.Date)
	assert.Nil(t, resp.SettledAt)
	assert.Nil(t, resp.SettledBy)
	assert.Equal(t, "João Silva", resp.User.Name)
	assert.Equal(t, "Maria Santos", resp.Roommate.Name)
}

func TestNewExpenseResponseSettled(t *testing.T) {
	maria := domain.User{ID: 2, Name: "Maria Santos", Email: "maria@roommate.com"}
	settledAt := time.Date(2025, 9, 26, 14, 5, 0, 0, time.UTC)

	e := domain.Expense{
		ID:          11,
		Amount:      decimal.RequireFromString("95.00"),
		Description: "Gás de cozinha",
		Category:    domain.ExpenseUtilities,
		Status:      domain.ExpenseSettled,
		SettledAt:   &settledAt,
		SettledByID: &maria.ID,
		SettledBy:   &maria,
		CreatedAt:   settledAt.AddDate(0, 0, -2),
	}

	resp := NewExpenseResponse(&e)
	assert.Equal(t, "settled", resp.Status)
	require.NotNil(t, resp.SettledAt)
	assert.Equal(t, "26/09/2025 14:05", *resp.SettledAt)
	require.NotNil(t, resp.SettledBy)
	assert.Equal(t, "Maria Santos", resp.SettledBy.Name)
}

func TestNewUserResponseFallsBackToEmail(t *testing.T) {
	u := domain.User{ID: 3, Email: "casa@roommate.com"}
	resp := NewUserResponse(&u)
	assert.Equal(t, "casa", resp.Name)
}

func TestNewShoppingItemResponse(t *testing.T) {
	joao := domain.User{ID: 1, Name: "João Silva"}
	item := domain.ShoppingItem{
		ID:        5,
		Name:      "Leite integral 1L",
		Category:  domain.ShoppingDairy,
		UserID:    joao.ID,
		User:      joao,
		CreatedAt: time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC),
	}

	asOwner := NewShoppingItemResponse(&item, joao.ID)
	assert.Equal(t, "🥛", asOwner.CategoryEmoji)
	assert.Equal(t, "Dairy", asOwner.CategoryDisplay)
	assert.True(t, asOwner.AddedBy.IsYou)

	asRoommate := NewShoppingItemResponse(&item, 2)
	assert.False(t, asRoommate.AddedBy.IsYou)
}

func TestNewReceiptResponse(t *testing.T) {
	r := domain.Receipt{
		ID:        4,
		Title:     "Farmácia",
		Amount:    decimal.RequireFromString("32.50"),
		Category:  domain.ReceiptHealthcare,
		Status:    domain.ReceiptUnprocessed,
		CreatedAt: time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC),
	}

	resp := NewReceiptResponse(&r)
	assert.Equal(t, "🏥", resp.CategoryEmoji)
	assert.Equal(t, "Não processado", resp.StatusDisplay)
	assert.False(t, resp.LinkedToExpense)
	assert.Nil(t, resp.Expense)
	assert.Nil(t, resp.ImageURL)

	expenseID := uint(10)
	r.ExpenseID = &expenseID
	r.Expense = &domain.Expense{ID: expenseID, Amount: decimal.RequireFromString("32.50"), Description: "Remédios"}
	r.Status = domain.ReceiptLinked

	linked := NewReceiptResponse(&r)
	assert.Equal(t, "Vinculado", linked.StatusDisplay)
	assert.True(t, linked.LinkedToExpense)
	require.NotNil(t, linked.Expense)
	assert.Equal(t, expenseID, linked.Expense.ID)
}
