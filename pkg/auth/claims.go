package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims represents the JWT issued to clients. The subject carries
// the account email; authorization data is resolved per request from the
// database rather than baked into the token.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}
