package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoPublicKey = errors.New("public key is empty")
	ErrNoSubject   = errors.New("token has no uid")
)

const leeway = 15 * time.Second

type Validator struct {
	publicKey *rsa.PublicKey
}

func New(pemPublicKey string) (*Validator, error) {
	if pemPublicKey == "" {
		return nil, ErrNoPublicKey
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemPublicKey))
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	return &Validator{publicKey: key}, nil
}

// Validate verifies an RS256 token and returns its claims. Tokens must carry
// an expiry and a non-zero uid.
func (v *Validator) Validate(tokenString string) (*UserClaims, error) {
	var claims UserClaims

	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return v.publicKey, nil
		},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithLeeway(leeway),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	if claims.UID == 0 {
		return nil, ErrNoSubject
	}

	return &claims, nil
}
