package auth

import (
	"testing"
	"time"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signWith(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerify_AcceptsValidToken(t *testing.T) {
	key := []byte("key-one")
	signed := signWith(t, key, jwt.MapClaims{
		"email": "a@b.c",
		"exp":   jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	claims, err := Verify(signed, key)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", claims["email"])
}

func TestVerify_RejectsWrongKey(t *testing.T) {
	signed := signWith(t, []byte("key-one"), jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	_, err := Verify(signed, []byte("key-two"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_AcceptsRotationKey(t *testing.T) {
	oldKey := []byte("retired-key")
	signed := signWith(t, oldKey, jwt.MapClaims{
		"email": "old@b.c",
		"exp":   jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	claims, err := Verify(signed, []byte("current-key"), oldKey)
	require.NoError(t, err)
	assert.Equal(t, "old@b.c", claims["email"])
}

func TestVerify_ExpiredToken(t *testing.T) {
	key := []byte("key-one")
	signed := signWith(t, key, jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	_, err := Verify(signed, key)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerify_RejectsNonHMAC(t *testing.T) {
	// alg=none tokens must never validate.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Verify(signed, []byte("key"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := Verify("not.a.token", []byte("key"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestEmailFromClaims(t *testing.T) {
	email, err := EmailFromClaims(jwt.MapClaims{"email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", email)

	_, err = EmailFromClaims(jwt.MapClaims{})
	require.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = EmailFromClaims(jwt.MapClaims{"email": 42})
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestHasClaim(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   bool
	}{
		{"single string match", jwt.MapClaims{"isadmin": "true"}, true},
		{"single string mismatch", jwt.MapClaims{"isadmin": "false"}, false},
		{"array match", jwt.MapClaims{"isadmin": []any{"false", "true"}}, true},
		{"string slice match", jwt.MapClaims{"isadmin": []string{"true"}}, true},
		{"absent", jwt.MapClaims{}, false},
		{"wrong type", jwt.MapClaims{"isadmin": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasClaim(tt.claims, "isadmin", "true"))
		})
	}
}
