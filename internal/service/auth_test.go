package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/testdb"
	"github.com/platewise/backend/internal/types"
)

func TestAuthRegisterLoginValidate(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotEqual(t, uuid.Nil, claims.UserID)

	// Duplicate registration is rejected.
	_, err = svc.Register("Alice Again", "alice@example.com", "other")
	assert.Error(t, err)

	loginToken, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)
	loginClaims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, loginClaims.UserID)

	_, err = svc.Login("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthValidateRejectsForgedToken(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewAuthService(db, "test-secret")
	forger := NewAuthService(db, "other-secret")

	forged, err := forger.GenerateToken(&types.TokenClaims{UserID: uuid.New(), Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
