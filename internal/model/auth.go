package model

// ----- auth DTOs -----

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and, when the server includes
// one, a ready-made identity. When User is nil the identity is derived
// by decoding the token's claims.
type LoginResponse struct {
	Token string    `json:"token"`
	User  *Identity `json:"user,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
