package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5" // JWT library, used here for claim extraction only
	"github.com/sweetshop/sweetshop-client/internal/model"
)

// ErrDecode wraps every token-decoding failure. Callers treat it as "no
// session", never as a crash.
var ErrDecode = errors.New("session: token decode failed")

// DecodeIdentity extracts the identity embedded in a token's claims.
// No signature verification happens here: the client has no signing
// secret and uses the claims for display and UI gating only. The server
// verifies the token on every request and remains the authority.
//
// Claim mapping follows the shop API's tokens: `sub` (falling back to
// `username`) carries the user, `role` defaults to the standard role
// when absent, `email` is optional.
func DecodeIdentity(token string) (model.Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	subject := claimString(claims, "sub")
	if subject == "" {
		subject = claimString(claims, "username")
	}
	if subject == "" {
		return model.Identity{}, fmt.Errorf("%w: no subject claim", ErrDecode)
	}

	return model.Identity{
		ID:       subject,
		Username: subject,
		Role:     model.ParseRole(claimString(claims, "role")),
		Email:    claimString(claims, "email"),
	}, nil
}

// claimString reads a claim as a string, tolerating absent or
// non-string values.
func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
