package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User models a storefront account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeUsername trims and lower-cases a username so that lookups and the
// uniqueness check are case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// IsRole reports whether role is one the system knows about.
func IsRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}
