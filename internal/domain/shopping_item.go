package domain

import "time"

// ShoppingCategory classifies an item on the shared shopping list.
type ShoppingCategory int

const (
	ShoppingProduce ShoppingCategory = iota
	ShoppingDairy
	ShoppingMeat
	ShoppingHousehold
	ShoppingPantry
	ShoppingOther
)

func (c ShoppingCategory) String() string {
	switch c {
	case ShoppingProduce:
		return "produce"
	case ShoppingDairy:
		return "dairy"
	case ShoppingMeat:
		return "meat"
	case ShoppingHousehold:
		return "household"
	case ShoppingPantry:
		return "pantry"
	case ShoppingOther:
		return "other"
	}
	return "unknown"
}

// Emoji returns the icon the SPA renders next to the item.
func (c ShoppingCategory) Emoji() string {
	switch c {
	case ShoppingProduce:
		return "🥬"
	case ShoppingDairy:
		return "🥛"
	case ShoppingMeat:
		return "🍖"
	case ShoppingHousehold:
		return "🧹"
	case ShoppingPantry:
		return "📦"
	default:
		return "📦"
	}
}

// ParseShoppingCategory maps a category name back to its value.
func ParseShoppingCategory(s string) (ShoppingCategory, bool) {
	for _, c := range ShoppingCategories() {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// ShoppingCategories returns every category, in stored order.
func ShoppingCategories() []ShoppingCategory {
	return []ShoppingCategory{ShoppingProduce, ShoppingDairy, ShoppingMeat, ShoppingHousehold, ShoppingPantry, ShoppingOther}
}

// ShoppingItem Model. An item on the household shopping list, added by one
// roommate on behalf of both. Pure CRUD plus a completed flag.
type ShoppingItem struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	Name       string           `json:"name"`
	Category   ShoppingCategory `json:"category"`
	Completed  bool             `json:"completed"`
	UserID     uint             `gorm:"not null;index" json:"user_id"`
	User       User             `json:"-"`
	RoommateID uint             `gorm:"not null;index" json:"roommate_id"`
	Roommate   User             `gorm:"foreignKey:RoommateID" json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ToggleCompletion flips the completed flag.
func (i *ShoppingItem) ToggleCompletion() {
	i.Completed = !i.Completed
}

// Validate checks the persisted invariants of a shopping item record.
func (i *ShoppingItem) Validate() error {
	var errs ValidationErrors
	if len(i.Name) < 2 {
		errs.Add("name", "is too short (minimum is 2 characters)")
	}
	if i.RoommateID == 0 {
		errs.Add("roommate", "must exist")
	}
	return errs.OrNil()
}
