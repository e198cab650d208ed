package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/common"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/auth"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// loginFailedMessage is deliberately identical for an unknown email and a
// wrong password.
const loginFailedMessage = "There was a problem with the email or the password"

// UserCredentials is the request body for /register and /login.
type UserCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs validation rules on the payload.
func (r UserCredentials) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// EditClaim is the request body for /makeadmin and /removeadmin.
type EditClaim struct {
	Email string `json:"email"`
}

// Validate runs validation rules on the payload.
func (r EditClaim) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload UserCredentials
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, err)
		return
	}

	_, codes, err := s.accounts.Register(ctx, payload.Email, payload.Password)
	if err != nil {
		s.logger.Error(ctx, "registration failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(codes) > 0 {
		s.writeJSON(w, http.StatusBadRequest, codes)
		return
	}

	response, err := s.tokens.Build(ctx, payload.Email)
	if err != nil {
		s.logger.Error(ctx, "token build failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.logger.Info(ctx, "Registered", "email", payload.Email)
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload UserCredentials
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, err)
		return
	}

	if _, err := s.accounts.Login(ctx, payload.Email, payload.Password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.writeJSON(w, http.StatusBadRequest, loginFailedMessage)
			return
		}
		s.logger.Error(ctx, "login failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response, err := s.tokens.Build(ctx, payload.Email)
	if err != nil {
		s.logger.Error(ctx, "token build failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) makeAdmin(w http.ResponseWriter, r *http.Request) {
	s.editClaim(w, r, s.accounts.AddClaim)
}

func (s *Server) removeAdmin(w http.ResponseWriter, r *http.Request) {
	s.editClaim(w, r, s.accounts.RemoveClaim)
}

func (s *Server) editClaim(w http.ResponseWriter, r *http.Request, edit func(ctx context.Context, email string, claim models.Claim) error) {
	ctx := r.Context()

	var payload EditClaim
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, err)
		return
	}

	if err := edit(ctx, payload.Email, models.AdminClaim); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.logger.Error(ctx, "claim update failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// renewToken re-derives the caller identity from the validated token and
// issues a fresh token with the full validity horizon.
func (s *Server) renewToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := claimsFromContext(ctx)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	email, err := auth.EmailFromClaims(claims)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response, err := s.tokens.Build(ctx, email)
	if err != nil {
		s.logger.Error(ctx, "token build failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, response)
}
