package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash, never the plain text.
// Name, Email and Gender are only filled by the detailed registration flow.
type User struct {
	ID        string
	Username  string
	Phone     string
	Password  string
	Name      string
	Email     string
	Gender    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
