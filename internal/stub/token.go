package stub

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sweetshop/sweetshop-client/internal/model"
)

// tokenTTL matches the shop API's ten-hour access tokens.
const tokenTTL = 10 * time.Hour

// mintToken builds and signs an HS256 JWT for an account. The claims
// are the ones the client's session store decodes: subject, role,
// optional email, plus the standard exp/iat pair.
func mintToken(secret string, acct account) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  acct.Username,
		"role": string(acct.Role),
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	if acct.Email != "" {
		claims["email"] = acct.Email
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseToken verifies an HS256 token and returns its claims.
func parseToken(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// claimRole reads the role claim, defaulting like the client does.
func claimRole(claims jwt.MapClaims) model.Role {
	raw, _ := claims["role"].(string)
	return model.ParseRole(raw)
}
