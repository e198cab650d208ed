package auth

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/common"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/config"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/secrets"
)

const (
	// OurIssuer annotates the signing key this service signs new tokens with.
	OurIssuer = "our-app"

	// SigningKeySecret is the vault secret holding the current signing key,
	// stored as base64-encoded symmetric key material.
	SigningKeySecret = "signing-key-value"
)

// KeyFromSecret fetches the current signing key from the vault and decodes
// it into HMAC key bytes. A missing or malformed secret is a hard error;
// callers must not issue tokens without a key.
func KeyFromSecret(ctx context.Context, provider secrets.Provider) ([]byte, error) {
	value, err := provider.Get(ctx, SigningKeySecret)
	if err != nil {
		return nil, fmt.Errorf("fetching signing key: %w", err)
	}

	key, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decoding signing key: %w", err)
	}

	return key, nil
}

// KeyForIssuer returns the first configured signing key annotated with the
// given issuer, or common.ErrorNotFound when no key matches.
func KeyForIssuer(cfg *config.Config, issuer string) ([]byte, error) {
	for _, sk := range cfg.SigningKeys {
		if sk.Issuer != issuer {
			continue
		}
		key, err := base64.StdEncoding.DecodeString(sk.Value)
		if err != nil {
			return nil, fmt.Errorf("decoding signing key for issuer %q: %w", issuer, err)
		}
		return key, nil
	}
	return nil, common.ErrorNotFound
}

// AllKeys decodes every configured signing key regardless of issuer. These
// are used to accept tokens signed with historical keys during rotation;
// new tokens are never signed with them.
func AllKeys(cfg *config.Config) ([][]byte, error) {
	keys := make([][]byte, 0, len(cfg.SigningKeys))
	for _, sk := range cfg.SigningKeys {
		key, err := base64.StdEncoding.DecodeString(sk.Value)
		if err != nil {
			return nil, fmt.Errorf("decoding signing key for issuer %q: %w", sk.Issuer, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
