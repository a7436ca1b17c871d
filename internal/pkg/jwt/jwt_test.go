package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken(7, "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestValidate_RejectsForeignAndExpiredTokens(t *testing.T) {
	token, err := New("other-secret", time.Hour).GenerateToken(1, "customer")
	require.NoError(t, err)

	_, err = New("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := New("secret", -time.Minute).GenerateToken(1, "customer")
	require.NoError(t, err)
	_, err = New("secret", time.Hour).ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
