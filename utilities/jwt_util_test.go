package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testprep-backend/internal/model"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	user := &model.User{ID: 7, Email: "ada@example.com", Role: model.RoleStudent}

	access, refresh, err := GenerateTokens(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := ValidateToken(access, false)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestValidateToken_WrongSecretClass(t *testing.T) {
	user := &model.User{ID: 7, Email: "ada@example.com"}
	access, refresh, err := GenerateTokens(user)
	require.NoError(t, err)

	// Access tokens are not valid refresh tokens and vice versa.
	_, err = ValidateToken(access, true)
	assert.Error(t, err)
	_, err = ValidateToken(refresh, false)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("definitely.not.a.jwt", false)
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	user := &model.User{ID: 7, Email: "ada@example.com", Role: model.RoleStudent}
	_, refresh, err := GenerateTokens(user)
	require.NoError(t, err)

	newAccess, newRefresh, err := RefreshTokens(refresh)
	require.NoError(t, err)

	claims, err := ValidateToken(newAccess, false)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)

	_, err = ValidateToken(newRefresh, true)
	assert.NoError(t, err)
}
