// Package tokens issues and verifies the signed admin session credential.
//
// A credential is a compact HS256 JWT whose payload carries the admin id,
// email, issue time and expiry. There is no server side session store: a
// credential is valid exactly while its signature verifies against the shared
// secret and the verification instant is strictly before its expiry.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const Lifetime = 7 * 24 * time.Hour

// ErrInvalidToken is the only error Verify returns. Callers must not expose
// the underlying reason to clients.
var ErrInvalidToken = errors.New("invalid token")

var errEmptySecret = errors.New("signing secret is empty")

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func Issue(userID, email string, secret []byte, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errEmptySecret
	}

	iat := now.Truncate(time.Second)
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(Lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks structure, algorithm, signature and expiry of token at now.
// The returned error wraps ErrInvalidToken and, for logging, the cause.
func Verify(token string, secret []byte, now time.Time) (*Claims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, errEmptySecret)
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// Expiry returns the expiry of claims, or the zero time if absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
