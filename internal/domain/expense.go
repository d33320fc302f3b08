package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the settlement state of an expense. Stored as a small int,
// serialized by name. The only transition is pending -> settled.
type ExpenseStatus int

const (
	ExpensePending ExpenseStatus = iota
	ExpenseSettled
)

// String returns the status name used in JSON and query filters.
func (s ExpenseStatus) String() string {
	switch s {
	case ExpensePending:
		return "pending"
	case ExpenseSettled:
		return "settled"
	}
	return "unknown"
}

// ParseExpenseStatus maps a status name back to its value.
func ParseExpenseStatus(s string) (ExpenseStatus, bool) {
	switch s {
	case "pending":
		return ExpensePending, true
	case "settled":
		return ExpenseSettled, true
	}
	return 0, false
}

// ExpenseCategory classifies a shared expense.
type ExpenseCategory int

const (
	ExpenseGroceries ExpenseCategory = iota
	ExpenseUtilities
	ExpenseHousehold
	ExpensePantry
	ExpenseOther
)

func (c ExpenseCategory) String() string {
	switch c {
	case ExpenseGroceries:
		return "groceries"
	case ExpenseUtilities:
		return "utilities"
	case ExpenseHousehold:
		return "household"
	case ExpensePantry:
		return "pantry"
	case ExpenseOther:
		return "other"
	}
	return "unknown"
}

// ParseExpenseCategory maps a category name back to its value.
func ParseExpenseCategory(s string) (ExpenseCategory, bool) {
	for _, c := range ExpenseCategories() {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// ExpenseCategories returns every category, in stored order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{ExpenseGroceries, ExpenseUtilities, ExpenseHousehold, ExpensePantry, ExpenseOther}
}

// Expense Model. A cost paid by one roommate (User) and shared with the other
// (Roommate). Each party owes half; settling discharges the obligation.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Description string          `json:"description"`
	Category    ExpenseCategory `json:"category"`
	Status      ExpenseStatus   `json:"status"`
	UserID      uint            `gorm:"not null;index" json:"user_id"` // The payer
	User        User            `json:"-"`
	RoommateID  uint            `gorm:"not null;index" json:"roommate_id"`
	Roommate    User            `gorm:"foreignKey:RoommateID" json:"-"`
	SettledAt   *time.Time      `json:"settled_at"`
	SettledByID *uint           `gorm:"index" json:"settled_by_id"`
	SettledBy   *User           `gorm:"foreignKey:SettledByID" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SplitAmount is one roommate's share: half of the total, exact decimal division.
func (e *Expense) SplitAmount() decimal.Decimal {
	return e.Amount.Div(decimal.NewFromInt(2))
}

// Validate checks the persisted invariants of an expense record.
func (e *Expense) Validate() error {
	var errs ValidationErrors
	if !e.Amount.IsPositive() {
		errs.Add("amount", "must be greater than 0")
	}
	if len(e.Description) < 3 {
		errs.Add("description", "is too short (minimum is 3 characters)")
	}
	if e.RoommateID == 0 {
		errs.Add("roommate", "must exist")
	}
	return errs.OrNil()
}
