package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g5stats/stats-api/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)

	token, err := svc.GenerateToken(models.Principal{UserID: 7, SuperAdmin: true})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	p := claims.Principal()
	assert.Equal(t, int64(7), p.UserID)
	assert.True(t, p.SuperAdmin)
	assert.False(t, p.Admin)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewService("secret", time.Hour)

	other, err := NewService("other", time.Hour).GenerateToken(models.Principal{UserID: 1})
	require.NoError(t, err)

	expired, err := NewService("secret", -time.Minute).GenerateToken(models.Principal{UserID: 1})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": other,
		"expired":      expired,
		"alg none":     none,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestDisabledServiceRejectsEverything(t *testing.T) {
	token, err := NewService("secret", time.Hour).GenerateToken(models.Principal{UserID: 1})
	require.NoError(t, err)

	svc := NewService("", time.Hour)
	assert.False(t, svc.Enabled())
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
