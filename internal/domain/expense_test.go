package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExpense() Expense {
	return Expense{
		Amount:      decimal.RequireFromString("127.80"),
		Description: "Compras no supermercado",
		Category:    ExpenseGroceries,
		UserID:      1,
		RoommateID:  2,
	}
}

func TestExpenseValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Expense)
		wantField string
	}{
		{"valid", func(e *Expense) {}, ""},
		{"zero amount", func(e *Expense) { e.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(e *Expense) { e.Amount = decimal.RequireFromString("-10.00") }, "amount"},
		{"short description", func(e *Expense) { e.Description = "ab" }, "description"},
		{"empty description", func(e *Expense) { e.Description = "" }, "description"},
		{"missing roommate", func(e *Expense) { e.RoommateID = 0 }, "roommate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExpense()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fe.Field
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestExpenseValidateCollectsEveryFailure(t *testing.T) {
	e := Expense{}
	err := e.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
	assert.Contains(t, verrs.Messages(), "Amount must be greater than 0")
	assert.Contains(t, verrs.Messages(), "Description is too short (minimum is 3 characters)")
	assert.Contains(t, verrs.Messages(), "Roommate must exist")
}

func TestSplitAmount(t *testing.T) {
	e := validExpense()
	assert.True(t, e.SplitAmount().Equal(decimal.RequireFromString("63.90")))
}

func TestExpenseStatusRoundTrip(t *testing.T) {
	for _, s := range []ExpenseStatus{ExpensePending, ExpenseSettled} {
		parsed, ok := ParseExpenseStatus(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, parsed)
	}
	_, ok := ParseExpenseStatus("bogus")
	assert.False(t, ok)
}

func TestExpenseCategoryRoundTrip(t *testing.T) {
	for _, c := range ExpenseCategories() {
		parsed, ok := ParseExpenseCategory(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}
	_, ok := ParseExpenseCategory("bogus")
	assert.False(t, ok)
}
