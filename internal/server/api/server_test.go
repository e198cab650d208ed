package api

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/logging"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/auth"
	sc "github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/config"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/models"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/secrets"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

type fakeAccounts struct {
	registerUser  *models.User
	registerCodes []string
	registerErr   error
	loginUser     *models.User
	loginErr      error
	findUser      *models.User
	findErr       error
	claimErr      error

	addedClaims   []string
	removedClaims []string
}

func (f *fakeAccounts) Register(ctx context.Context, email, password string) (*models.User, []string, error) {
	return f.registerUser, f.registerCodes, f.registerErr
}

func (f *fakeAccounts) Login(ctx context.Context, email, password string) (*models.User, error) {
	return f.loginUser, f.loginErr
}

func (f *fakeAccounts) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findUser, f.findErr
}

func (f *fakeAccounts) AddClaim(ctx context.Context, email string, claim models.Claim) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.addedClaims = append(f.addedClaims, email)
	return nil
}

func (f *fakeAccounts) RemoveClaim(ctx context.Context, email string, claim models.Claim) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.removedClaims = append(f.removedClaims, email)
	return nil
}

type fakeTokens struct {
	response *auth.AuthenticationResponse
	err      error
	built    []string
}

func (f *fakeTokens) Build(ctx context.Context, email string) (*auth.AuthenticationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.built = append(f.built, email)
	return f.response, nil
}

type fakeFiles struct {
	storeURL      string
	storeErr      error
	deleteErr     error
	stored        []storage.Upload
	deletedRoutes []string
}

func (f *fakeFiles) Store(ctx context.Context, container string, file storage.Upload) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.stored = append(f.stored, file)
	return f.storeURL, nil
}

func (f *fakeFiles) Delete(ctx context.Context, route, container string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedRoutes = append(f.deletedRoutes, route)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestServer(accounts *fakeAccounts, tokens *fakeTokens, files *fakeFiles) *Server {
	cfg := &sc.Config{S3Container: "movies"}
	vault := secrets.NewStaticProvider(map[string]string{
		auth.SigningKeySecret: base64.StdEncoding.EncodeToString(testSigningKey),
	})
	return NewServer(cfg, testLogger(), accounts, tokens, files, vault)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSigningKey)
	require.NoError(t, err)
	return signed
}

func adminToken(t *testing.T, email string) string {
	return signedToken(t, jwt.MapClaims{"email": email, "isadmin": "true"})
}

func userToken(t *testing.T, email string) string {
	return signedToken(t, jwt.MapClaims{"email": email})
}
