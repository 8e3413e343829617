package domain

import "time"

// User is the domain entity for an account.
// Token carries the pending confirmation or password-reset token; it is
// empty whenever no token is outstanding.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Token        string
	Confirmed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
