package api

import (
	"strings"

	"github.com/shopspring/decimal"

	"roomies/internal/domain"
	"roomies/internal/utils"
)

// Money pairs a raw numeric value with its BRL display form.
type Money struct {
	Raw       float64 `json:"raw"`
	Formatted string  `json:"formatted"`
}

// NewMoney builds the raw+formatted pair the SPA renders.
func NewMoney(amount decimal.Decimal) Money {
	return Money{
		Raw:       amount.InexactFloat64(),
		Formatted: utils.FormatBRL(amount),
	}
}

// humanize turns an enum name into a display label: "groceries" -> "Groceries".
func humanize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// UserResponse is the embedded user representation.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUserResponse falls back to the email local part when the name is blank.
func NewUserResponse(u *domain.User) UserResponse {
	name := u.Name
	if name == "" {
		name, _, _ = strings.Cut(u.Email, "@")
	}
	return UserResponse{ID: u.ID, Name: name, Email: u.Email}
}

// SettledByResponse identifies who performed a settlement.
type SettledByResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ExpenseResponse is the full expense representation, presentation fields
// included: formatted money, dd/mm/yyyy dates and display labels.
type ExpenseResponse struct {
	ID              uint               `json:"id"`
	Description     string             `json:"description"`
	Amount          Money              `json:"amount"`
	YourShare       Money              `json:"your_share"`
	Category        string             `json:"category"`
	CategoryDisplay string             `json:"category_display"`
	Status          string             `json:"status"`
	StatusDisplay   string             `json:"status_display"`
	Date            string             `json:"date"`
	SettledAt       *string            `json:"settled_at"`
	SettledBy       *SettledByResponse `json:"settled_by"`
	User            UserResponse       `json:"user"`
	Roommate        UserResponse       `json:"roommate"`
}

// NewExpenseResponse serializes an expense with its preloaded associations.
func NewExpenseResponse(e *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:              e.ID,
		Description:     e.Description,
		Amount:          NewMoney(e.Amount),
		YourShare:       NewMoney(e.SplitAmount()),
		Category:        e.Category.String(),
		CategoryDisplay: humanize(e.Category.String()),
		Status:          e.Status.String(),
		StatusDisplay:   humanize(e.Status.String()),
		Date:            e.CreatedAt.Format(utils.DateLayout),
		User:            NewUserResponse(&e.User),
		Roommate:        NewUserResponse(&e.Roommate),
	}
	if e.SettledAt != nil {
		s := e.SettledAt.Format(utils.DateTimeLayout)
		resp.SettledAt = &s
	}
	if e.SettledBy != nil {
		resp.SettledBy = &SettledByResponse{ID: e.SettledBy.ID, Name: e.SettledBy.Name}
	}
	return resp
}

// AddedByResponse identifies who put an item on the shopping list.
type AddedByResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	IsYou bool   `json:"is_you"`
}

// ShoppingItemResponse is the shopping item representation.
type ShoppingItemResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	CategoryDisplay string          `json:"category_display"`
	CategoryEmoji   string          `json:"category_emoji"`
	Completed       bool            `json:"completed"`
	Date            string          `json:"date"`
	AddedBy         AddedByResponse `json:"added_by"`
	Roommate        UserResponse    `json:"roommate"`
}

// NewShoppingItemResponse serializes an item; currentUserID drives the
// added_by.is_you flag.
func NewShoppingItemResponse(i *domain.ShoppingItem, currentUserID uint) ShoppingItemResponse {
	return ShoppingItemResponse{
		ID:              i.ID,
		Name:            i.Name,
		Category:        i.Category.String(),
		CategoryDisplay: humanize(i.Category.String()),
		CategoryEmoji:   i.Category.Emoji(),
		Completed:       i.Completed,
		Date:            i.CreatedAt.Format(utils.DateLayout),
		AddedBy: AddedByResponse{
			ID:    i.User.ID,
			Name:  i.User.Name,
			IsYou: i.UserID == currentUserID,
		},
		Roommate: NewUserResponse(&i.Roommate),
	}
}

// ReceiptResponse is the receipt representation.
type ReceiptResponse struct {
	ID              uint             `json:"id"`
	Title           string           `json:"title"`
	Amount          Money            `json:"amount"`
	Category        string           `json:"category"`
	CategoryDisplay string           `json:"category_display"`
	CategoryEmoji   string           `json:"category_emoji"`
	Status          string           `json:"status"`
	StatusDisplay   string           `json:"status_display"`
	Date            string           `json:"date"`
	LinkedToExpense bool             `json:"linked_to_expense"`
	ImageURL        *string          `json:"image_url"` // Attachment storage not implemented
	Expense         *ExpenseResponse `json:"expense,omitempty"`
	User            UserResponse     `json:"user"`
}

// receiptStatusDisplay returns the Portuguese labels the SPA shows.
func receiptStatusDisplay(s domain.ReceiptStatus) string {
	switch s {
	case domain.ReceiptUnprocessed:
		return "Não processado"
	case domain.ReceiptLinked:
		return "Vinculado"
	case domain.ReceiptArchived:
		return "Arquivado"
	}
	return humanize(s.String())
}

// NewReceiptResponse serializes a receipt, embedding the expense when linked.
func NewReceiptResponse(r *domain.Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:              r.ID,
		Title:           r.Title,
		Amount:          NewMoney(r.Amount),
		Category:        r.Category.String(),
		CategoryDisplay: humanize(r.Category.String()),
		CategoryEmoji:   r.Category.Emoji(),
		Status:          r.Status.String(),
		StatusDisplay:   receiptStatusDisplay(r.Status),
		Date:            r.CreatedAt.Format(utils.DateLayout),
		LinkedToExpense: r.LinkedToExpense(),
		User:            NewUserResponse(&r.User),
	}
	if r.LinkedToExpense() && r.Expense != nil {
		e := NewExpenseResponse(r.Expense)
		resp.Expense = &e
	}
	return resp
}
