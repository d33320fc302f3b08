package domain

import "time"

// User Model. Two users form a household; every expense and shopping item
// references one as payer/owner and the other as roommate.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the persisted invariants of a user record.
func (u *User) Validate() error {
	var errs ValidationErrors
	if u.Name == "" {
		errs.Add("name", "can't be blank")
	}
	if u.Email == "" {
		errs.Add("email", "can't be blank")
	}
	return errs.OrNil()
}
