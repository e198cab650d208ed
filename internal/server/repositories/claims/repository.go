package claims

import (
	"context"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, userID string, claim models.Claim) error
	Remove(ctx context.Context, userID string, claim models.Claim) error
	GetForUser(ctx context.Context, userID string) ([]models.Claim, error)
}
