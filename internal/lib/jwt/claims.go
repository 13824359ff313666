package jwt

import "github.com/golang-jwt/jwt/v5"

// UserClaims identifies a registered user. Any caller presenting a token with
// these claims is validated in the registered tier.
type UserClaims struct {
	UID   int64  `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}
