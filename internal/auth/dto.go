package auth

import (
	"time"

	"github.com/electrostorehq/backend/internal/users"
)

// LoginRequest captures the user credentials sent to the token endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the opaque refresh token being exchanged.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// GoogleLoginRequest carries the Google-issued ID token.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// RefreshTokenDTO is the transport shape of the rotating refresh credential.
type RefreshTokenDTO struct {
	Token     string    `json:"refreshToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenResponse contains the bearer token, refresh token and user produced by
// a successful authentication.
type TokenResponse struct {
	Token        string          `json:"token"`
	RefreshToken RefreshTokenDTO `json:"refreshToken"`
	User         *users.UserDTO  `json:"user"`
}
