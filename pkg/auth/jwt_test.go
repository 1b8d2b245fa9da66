package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewTokenService("test-secret", 24)
	patientID := uuid.New()

	token, err := svc.GenerateToken(patientID, "maria@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, patientID, claims.PatientID)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, patientID.String(), claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", 24).GenerateToken(uuid.New(), "x@example.com")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", 24).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", -1).(*tokenService)
	svc.expiryHours = -1 // force an already-expired token

	token, err := svc.GenerateToken(uuid.New(), "x@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", 24)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
