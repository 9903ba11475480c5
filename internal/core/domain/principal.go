package domain

import "time"

// Principal is the identity carried by a verified session token. It is only
// ever built from a token whose signature and expiry have been checked.
type Principal struct {
	UserID    string
	Username  string
	Role      string
	FullName  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// DisplayName is the name shown on orders placed by the principal.
func (p Principal) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}

// PrincipalFor builds the unsigned principal for a freshly authenticated user.
// IssuedAt and ExpiresAt are filled in by the token codec.
func PrincipalFor(u *User) Principal {
	return Principal{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		FullName: u.FullName,
	}
}
