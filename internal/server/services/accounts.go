// Package services contains server-side business logic. This file implements
// AccountService, which handles registration, credential verification, and
// claim management for movie-catalog accounts.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/common"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/models"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// AccountService provides account-related operations:
// - Register: create accounts (password policy + bcrypt hash)
// - Login: verify credentials
// - AddClaim / RemoveClaim / GetClaims: claim management
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewAccountService constructs an AccountService using repositories.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m}
}

// Register creates a new account for the given email and password. Policy
// violations and a duplicate email are reported as a list of error codes
// with a nil error; only infrastructure failures produce a non-nil error.
func (s *AccountService) Register(ctx context.Context, email, password string) (*models.User, []string, error) {

	if codes := ValidatePassword(password); len(codes) > 0 {
		return nil, codes, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}
	repo := s.repomanager.Users(s.db)

	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, []string{CodeDuplicateEmail}, nil
		}
		return nil, nil, fmt.Errorf("creating account: %w", err)
	}

	return created, nil, nil
}

// Login verifies the password for the account with the given email. An
// absent account and a wrong password are indistinguishable to the caller;
// both map to common.ErrorUnauthorized. Repeated failures never lock the
// account.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// FindByEmail looks up an account; common.ErrorNotFound when absent.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

// AddClaim attaches a claim to the account with the given email. Adding a
// claim the account already holds is a no-op.
func (s *AccountService) AddClaim(ctx context.Context, email string, claim models.Claim) error {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.repomanager.Claims(s.db).Add(ctx, user.ID, claim)
}

// RemoveClaim detaches a claim from the account with the given email.
func (s *AccountService) RemoveClaim(ctx context.Context, email string, claim models.Claim) error {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.repomanager.Claims(s.db).Remove(ctx, user.ID, claim)
}

// GetClaims returns the claims stored on the account with the given email,
// in insertion order. Satisfies auth.ClaimSource.
func (s *AccountService) GetClaims(ctx context.Context, email string) ([]models.Claim, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Claims(s.db).GetForUser(ctx, user.ID)
}
