package auth

import (
	"errors"
	"fmt"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Verify parses and validates a token against each candidate key in turn,
// accepting the first key that validates. Callers pass the current vault key
// followed by the configured rotation keys. Only HMAC-signed tokens are
// accepted.
func Verify(tokenString string, keys ...[]byte) (jwt.MapClaims, error) {
	for _, key := range keys {
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return key, nil
		})
		if err == nil && token.Valid {
			return claims, nil
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
	}
	return nil, common.ErrInvalidToken
}

// EmailFromClaims extracts the account identity asserted by a validated
// token.
func EmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims[EmailClaim].(string)
	if !ok || email == "" {
		return "", common.ErrInvalidToken
	}
	return email, nil
}

// HasClaim reports whether the claim set carries the given (type, value)
// pair, covering both single-value and repeated-claim encodings.
func HasClaim(claims jwt.MapClaims, claimType, value string) bool {
	switch v := claims[claimType].(type) {
	case string:
		return v == value
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == value {
				return true
			}
		}
	case []string:
		for _, s := range v {
			if s == value {
				return true
			}
		}
	}
	return false
}
