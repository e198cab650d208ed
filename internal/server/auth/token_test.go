package auth

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/common"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/models"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/secrets"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func testVault(t *testing.T) secrets.Provider {
	t.Helper()
	return secrets.NewStaticProvider(map[string]string{
		SigningKeySecret: base64.StdEncoding.EncodeToString(testKey),
	})
}

type fakeClaimSource struct {
	claims []models.Claim
	err    error
}

func (f *fakeClaimSource) GetClaims(ctx context.Context, email string) ([]models.Claim, error) {
	return f.claims, f.err
}

func TestBuilder_Build_IssuesVerifiableToken(t *testing.T) {
	b := NewBuilder(testVault(t), &fakeClaimSource{})

	resp, err := b.Build(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := Verify(resp.Token, testKey)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", claims["email"])
	assert.Equal(t, "files-data", claims["data-about-user"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, resp.Expiration, exp.Time, time.Second)
	assert.WithinDuration(t, time.Now().UTC().AddDate(1, 0, 0), resp.Expiration, time.Minute)
}

func TestBuilder_Build_IncludesStoredClaims(t *testing.T) {
	source := &fakeClaimSource{claims: []models.Claim{
		{Type: "isadmin", Value: "true"},
	}}
	b := NewBuilder(testVault(t), source)

	resp, err := b.Build(context.Background(), "admin@example.com")
	require.NoError(t, err)

	claims, err := Verify(resp.Token, testKey)
	require.NoError(t, err)
	assert.True(t, HasClaim(claims, "isadmin", "true"))
}

func TestBuilder_Build_PreservesDuplicateClaims(t *testing.T) {
	source := &fakeClaimSource{claims: []models.Claim{
		{Type: "role", Value: "editor"},
		{Type: "role", Value: "reviewer"},
	}}
	b := NewBuilder(testVault(t), source)

	resp, err := b.Build(context.Background(), "dup@example.com")
	require.NoError(t, err)

	claims, err := Verify(resp.Token, testKey)
	require.NoError(t, err)

	values, ok := claims["role"].([]any)
	require.True(t, ok, "repeated claim type must serialize as an array")
	assert.Equal(t, []any{"editor", "reviewer"}, values)
	assert.True(t, HasClaim(claims, "role", "reviewer"))
}

func TestBuilder_Build_MissingSigningKey(t *testing.T) {
	b := NewBuilder(secrets.NewStaticProvider(nil), &fakeClaimSource{})

	resp, err := b.Build(context.Background(), "user@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Nil(t, resp)
}

func TestBuilder_Build_MalformedSigningKey(t *testing.T) {
	vault := secrets.NewStaticProvider(map[string]string{
		SigningKeySecret: "*** not base64 ***",
	})
	b := NewBuilder(vault, &fakeClaimSource{})

	resp, err := b.Build(context.Background(), "user@example.com")
	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestBuilder_Build_ClaimLookupError(t *testing.T) {
	b := NewBuilder(testVault(t), &fakeClaimSource{err: common.ErrorInternal})

	resp, err := b.Build(context.Background(), "user@example.com")
	require.ErrorIs(t, err, common.ErrorInternal)
	assert.Nil(t, resp)
}

func TestClaimSet_MapClaims(t *testing.T) {
	set := NewClaimSet()
	set.Add("email", "a@b.c")
	set.Add("role", "editor")
	set.Add("role", "reviewer")

	exp := time.Now().Add(time.Hour)
	m := set.MapClaims(exp)

	assert.Equal(t, "a@b.c", m["email"])
	assert.Equal(t, []string{"editor", "reviewer"}, m["role"])
	assert.Equal(t, jwt.NewNumericDate(exp), m["exp"])
}
