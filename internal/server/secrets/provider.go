// Package secrets abstracts the secret vault behind a narrow lookup
// interface so the rest of the server never talks to a cloud SDK directly.
package secrets

import (
	"context"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/common"
)

// Provider returns a named secret string. Implementations are expected to
// map an absent secret to common.ErrorNotFound.
type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

// StaticProvider serves secrets from an in-memory map. Used in tests and for
// local development without a vault.
type StaticProvider struct {
	values map[string]string
}

// NewStaticProvider copies the given map into a StaticProvider.
func NewStaticProvider(values map[string]string) *StaticProvider {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StaticProvider{values: copied}
}

func (p *StaticProvider) Get(ctx context.Context, name string) (string, error) {
	v, ok := p.values[name]
	if !ok {
		return "", common.ErrorNotFound
	}
	return v, nil
}
