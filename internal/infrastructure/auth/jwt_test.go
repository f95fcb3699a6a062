package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/shared/authorization"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 30, 14)

	pair, err := svc.Generate("uuid-1", "ada@example.com", authorization.RoleAdministrator)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(30*60), pair.ExpiresIn)

	claims, err := svc.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", claims.UserUUID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, authorization.RoleAdministrator, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	refreshClaims, err := svc.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestJWTService_VerifyRejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", 30, 14)
	other := NewJWTService("other-secret", 30, 14)

	pair, err := svc.Generate("uuid-1", "ada@example.com", authorization.RoleStandard)
	require.NoError(t, err)

	_, err = other.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_VerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 30, 14)

	_, err := svc.Verify("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	hasher := NewPasswordHasher(4)

	hash, err := hasher.Hash("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.True(t, hasher.Compare(hash, "secret-password"))
	assert.False(t, hasher.Compare(hash, "wrong-password"))
}
