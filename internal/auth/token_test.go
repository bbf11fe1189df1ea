package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/innerventory/server/internal/models"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	tokens := NewTokenManager("secret", "innerventory", time.Hour)
	token, err := tokens.Generate(models.User{ID: "user-1", Role: models.RoleAdmin})
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID())
	require.Equal(t, "Admin", claims.Role)
	require.Equal(t, "innerventory", claims.Issuer)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateRequiresUserID(t *testing.T) {
	tokens := NewTokenManager("secret", "innerventory", time.Hour)
	_, err := tokens.Generate(models.User{Role: models.RoleStaff})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	tokens := NewTokenManager("secret", "innerventory", time.Hour)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := tokens.Generate(models.User{ID: "user-1", Role: models.RoleStaff})
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("other", "innerventory", time.Hour)
	token, err := issuer.Generate(models.User{ID: "user-1", Role: models.RoleStaff})
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "innerventory", time.Hour).Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Role:             "Admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "innerventory"},
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "innerventory", time.Hour).Validate(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMissing(t *testing.T) {
	_, err := NewTokenManager("secret", "innerventory", time.Hour).Validate(" ")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestTokenFromHeader(t *testing.T) {
	_, err := TokenFromHeader("nope")
	require.ErrorIs(t, err, ErrMissingToken)
	_, err = TokenFromHeader("Basic abc")
	require.ErrorIs(t, err, ErrMissingToken)

	token, err := TokenFromHeader("bearer abc.def")
	require.NoError(t, err)
	require.Equal(t, "abc.def", token)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.NoError(t, ComparePassword(hash, "hunter22"))
	require.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)
}
