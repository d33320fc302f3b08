package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptCategory classifies a stored receipt. Wider than the expense
// categories because receipts also cover personal purchases.
type ReceiptCategory int

const (
	ReceiptGroceries ReceiptCategory = iota
	ReceiptUtilities
	ReceiptHousehold
	ReceiptTransport
	ReceiptEntertainment
	ReceiptHealthcare
	ReceiptOther
)

func (c ReceiptCategory) String() string {
	switch c {
	case ReceiptGroceries:
		return "groceries"
	case ReceiptUtilities:
		return "utilities"
	case ReceiptHousehold:
		return "household"
	case ReceiptTransport:
		return "transport"
	case ReceiptEntertainment:
		return "entertainment"
	case ReceiptHealthcare:
		return "healthcare"
	case ReceiptOther:
		return "other"
	}
	return "unknown"
}

// Emoji returns the icon the SPA renders on the receipt card.
func (c ReceiptCategory) Emoji() string {
	switch c {
	case ReceiptGroceries:
		return "🛒"
	case ReceiptUtilities:
		return "💡"
	case ReceiptHousehold:
		return "🏠"
	case ReceiptTransport:
		return "🚗"
	case ReceiptEntertainment:
		return "🎬"
	case ReceiptHealthcare:
		return "🏥"
	default:
		return "📄"
	}
}

// ParseReceiptCategory maps a category name back to its value.
func ParseReceiptCategory(s string) (ReceiptCategory, bool) {
	for _, c := range ReceiptCategories() {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// ReceiptCategories returns every category, in stored order.
func ReceiptCategories() []ReceiptCategory {
	return []ReceiptCategory{ReceiptGroceries, ReceiptUtilities, ReceiptHousehold, ReceiptTransport, ReceiptEntertainment, ReceiptHealthcare, ReceiptOther}
}

// ReceiptStatus tracks whether a receipt has been tied to an expense.
type ReceiptStatus int

const (
	ReceiptUnprocessed ReceiptStatus = iota
	ReceiptLinked
	ReceiptArchived
)

func (s ReceiptStatus) String() string {
	switch s {
	case ReceiptUnprocessed:
		return "unprocessed"
	case ReceiptLinked:
		return "linked"
	case ReceiptArchived:
		return "archived"
	}
	return "unknown"
}

// ParseReceiptStatus maps a status name back to its value.
func ParseReceiptStatus(s string) (ReceiptStatus, bool) {
	switch s {
	case "unprocessed":
		return ReceiptUnprocessed, true
	case "linked":
		return ReceiptLinked, true
	case "archived":
		return ReceiptArchived, true
	}
	return 0, false
}

// Receipt Model. A stored proof of purchase, optionally linked to at most one
// expense. Linking sets the status to linked.
type Receipt struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Title     string          `gorm:"not null" json:"title"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category  ReceiptCategory `gorm:"index" json:"category"`
	Status    ReceiptStatus   `gorm:"index" json:"status"`
	ExpenseID *uint           `json:"expense_id"` // Can be unlinked initially
	Expense   *Expense        `json:"-"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	User      User            `json:"-"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LinkedToExpense reports whether this receipt is tied to an expense.
func (r *Receipt) LinkedToExpense() bool {
	return r.ExpenseID != nil
}

// Validate checks the persisted invariants of a receipt record.
func (r *Receipt) Validate() error {
	var errs ValidationErrors
	if len(r.Title) < 3 {
		errs.Add("title", "is too short (minimum is 3 characters)")
	}
	if !r.Amount.IsPositive() {
		errs.Add("amount", "must be greater than 0")
	}
	return errs.OrNil()
}
