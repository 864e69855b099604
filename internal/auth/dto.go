package auth

import (
	"github.com/zxclownhd/fishing-app/internal/users"
)

// RegisterRequest is the self-registration payload. Role may only be OWNER or
// USER; anything else registers a USER.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required"`
	Password    string  `json:"password" validate:"required"`
	DisplayName *string `json:"displayName,omitempty"`
	Role        string  `json:"role,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token paired with the bearer token's jti.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User         *users.UserDTO `json:"user"`
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken"`
}

// TokenPair is returned by refresh.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
