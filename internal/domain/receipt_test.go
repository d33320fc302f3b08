package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptValidate(t *testing.T) {
	r := Receipt{Title: "Mercado", Amount: decimal.RequireFromString("45.30"), UserID: 1}
	assert.NoError(t, r.Validate())

	r = Receipt{Title: "ab", Amount: decimal.Zero}
	err := r.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Messages(), "Title is too short (minimum is 3 characters)")
	assert.Contains(t, verrs.Messages(), "Amount must be greater than 0")
}

func TestReceiptLinkedToExpense(t *testing.T) {
	var r Receipt
	assert.False(t, r.LinkedToExpense())

	id := uint(7)
	r.ExpenseID = &id
	assert.True(t, r.LinkedToExpense())
}

func TestReceiptCategoryEmoji(t *testing.T) {
	tests := []struct {
		category ReceiptCategory
		want     string
	}{
		{ReceiptGroceries, "🛒"},
		{ReceiptUtilities, "💡"},
		{ReceiptHousehold, "🏠"},
		{ReceiptTransport, "🚗"},
		{ReceiptEntertainment, "🎬"},
		{ReceiptHealthcare, "🏥"},
		{ReceiptOther, "📄"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.Emoji(), tt.category.String())
	}
}

func TestReceiptStatusRoundTrip(t *testing.T) {
	for _, s := range []ReceiptStatus{ReceiptUnprocessed, ReceiptLinked, ReceiptArchived} {
		parsed, ok := ParseReceiptStatus(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, parsed)
	}
}

func TestShoppingItemValidate(t *testing.T) {
	i := ShoppingItem{Name: "Leite integral 1L", UserID: 1, RoommateID: 2}
	assert.NoError(t, i.Validate())

	i = ShoppingItem{Name: "a", RoommateID: 2}
	err := i.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Messages(), "Name is too short (minimum is 2 characters)")
}

func TestShoppingItemToggleCompletion(t *testing.T) {
	i := ShoppingItem{}
	i.ToggleCompletion()
	assert.True(t, i.Completed)
	i.ToggleCompletion()
	assert.False(t, i.Completed)
}

func TestShoppingCategoryEmoji(t *testing.T) {
	assert.Equal(t, "🥬", ShoppingProduce.Emoji())
	assert.Equal(t, "🥛", ShoppingDairy.Emoji())
	assert.Equal(t, "🍖", ShoppingMeat.Emoji())
	assert.Equal(t, "🧹", ShoppingHousehold.Emoji())
	assert.Equal(t, "📦", ShoppingPantry.Emoji())
	assert.Equal(t, "📦", ShoppingOther.Emoji())
}
