package claims

import (
	"context"
	"fmt"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/dbx"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add inserts a claim for the user. The table carries a uniqueness constraint
// on (user_id, claim_type, claim_value), so granting the same claim twice is
// a no-op rather than a duplicate row.
func (r *PostgresRepository) Add(ctx context.Context, userID string, claim models.Claim) error {

	query :=
		`INSERT INTO user_claims (user_id, claim_type, claim_value)
         VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, claim_type, claim_value) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, claim.Type, claim.Value); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID string, claim models.Claim) error {
	query :=
		`DELETE FROM user_claims
		 WHERE user_id = $1 AND claim_type = $2 AND claim_value = $3
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, claim.Type, claim.Value); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetForUser(ctx context.Context, userID string) ([]models.Claim, error) {
	query :=
		`SELECT claim_type, claim_value FROM user_claims
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Claim
	for rows.Next() {
		var c models.Claim
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
