package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("payroll-operator")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	subject, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "payroll-operator", subject)
}

func TestGenerateAccessToken_RequiresSubject(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, _, err := svc.GenerateAccessToken("")
	assert.Error(t, err)
}

func TestValidateAccessToken_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	expired := NewJWTService("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.GenerateAccessToken("payroll-operator")
	require.NoError(t, err)

	otherKey := NewJWTService("another-secret", time.Hour)
	foreignToken, _, err := otherKey.GenerateAccessToken("payroll-operator")
	require.NoError(t, err)

	_, refreshToken, err := svc.JWTAuth().Encode(map[string]interface{}{
		"sub":  "payroll-operator",
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expiredToken},
		{name: "signed with another key", token: foreignToken},
		{name: "wrong token type", token: refreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
