package entity

import "time"

// Authorization roles carried in User.Role2. Role1 is a free-form affiliation
// tag (STARTUP, INVESTOR, MENTOR, OTHER in the UI) and is never used for
// access control.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never cleartext, and is stripped from every
// API response.
type User struct {
	ID          string
	FullName    string
	Email       string
	Password    string
	Role1       string
	Role2       string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAdmin reports whether the account holds the administrative role.
func (u *User) IsAdmin() bool {
	return u.Role2 == RoleAdmin
}

// ValidRole2 reports whether the given tag is an accepted authorization role.
func ValidRole2(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
