package model

// Role is the closed set of roles the shop API issues in token claims.
// Keeping it a dedicated type forces call sites to switch over the known
// values instead of comparing raw strings.
type Role string

const (
	// RoleUser is the standard customer role and the default when a
	// token carries no role claim.
	RoleUser Role = "ROLE_USER"
	// RoleAdmin unlocks the admin-only operations. The gate is a UI
	// convenience; the server enforces the role independently.
	RoleAdmin Role = "ROLE_ADMIN"
)

// ParseRole maps a raw claim value onto the closed Role set. Anything
// that is not the admin role, including an absent claim, degrades to the
// standard user role.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// IsAdmin reports whether the role grants the admin affordances.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

// Identity is the user record derived from a token's claims at login or
// restore time. It is never fetched independently of the token.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Email    string `json:"email,omitempty"`
}
