// Package auth implements token issuance and verification for the movies
// API: a claim-set builder producing HS256-signed bearer tokens, and key
// resolution against the secret vault and statically configured rotation
// keys.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/models"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/secrets"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// EmailClaim carries the account identity inside issued tokens.
	EmailClaim = "email"

	// userDataClaim is a fixed marker claim present on every token.
	userDataClaim      = "data-about-user"
	userDataClaimValue = "files-data"

	// tokenValidityYears is the fixed lifetime of every issued token.
	tokenValidityYears = 1
)

// ClaimSource provides the claims stored on an account, identified by email.
type ClaimSource interface {
	GetClaims(ctx context.Context, email string) ([]models.Claim, error)
}

// AuthenticationResponse is the payload returned by every endpoint that
// issues a token.
type AuthenticationResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}

// ClaimSet accumulates claims in insertion order. Repeated claim types are
// kept, not deduplicated; they serialize as a JSON array value.
type ClaimSet struct {
	order  []string
	values map[string][]string
}

func NewClaimSet() *ClaimSet {
	return &ClaimSet{values: make(map[string][]string)}
}

// Add appends a claim. Claim types are case-sensitive.
func (s *ClaimSet) Add(claimType, value string) {
	if _, ok := s.values[claimType]; !ok {
		s.order = append(s.order, claimType)
	}
	s.values[claimType] = append(s.values[claimType], value)
}

// MapClaims renders the set as jwt.MapClaims with the given expiration.
// A type seen once becomes a string value; a repeated type becomes a slice.
func (s *ClaimSet) MapClaims(expiration time.Time) jwt.MapClaims {
	m := jwt.MapClaims{}
	for _, claimType := range s.order {
		values := s.values[claimType]
		if len(values) == 1 {
			m[claimType] = values[0]
		} else {
			m[claimType] = values
		}
	}
	m["exp"] = jwt.NewNumericDate(expiration)
	return m
}

// Builder assembles and signs bearer tokens for accounts.
type Builder struct {
	secrets secrets.Provider
	claims  ClaimSource
}

// NewBuilder constructs a Builder over the vault and the account claim store.
func NewBuilder(provider secrets.Provider, claims ClaimSource) *Builder {
	return &Builder{secrets: provider, claims: claims}
}

// Build produces a signed token for the given account email. The claim set
// is the email, the fixed marker claim, and every claim stored on the
// account in order. Tokens are signed HS256 with the current vault key, no
// issuer or audience, and expire one year from issuance.
//
// Any failure (claim lookup, key retrieval, signing) is returned as an
// error; a response is never produced with an empty token.
func (b *Builder) Build(ctx context.Context, email string) (*AuthenticationResponse, error) {

	set := NewClaimSet()
	set.Add(EmailClaim, email)
	set.Add(userDataClaim, userDataClaimValue)

	stored, err := b.claims.GetClaims(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetching account claims: %w", err)
	}
	for _, c := range stored {
		set.Add(c.Type, c.Value)
	}

	key, err := KeyFromSecret(ctx, b.secrets)
	if err != nil {
		return nil, err
	}

	expiration := time.Now().UTC().AddDate(tokenValidityYears, 0, 0)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, set.MapClaims(expiration))
	signed, err := token.SignedString(key)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &AuthenticationResponse{Token: signed, Expiration: expiration}, nil
}
