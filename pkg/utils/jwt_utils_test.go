package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	ConfigureJWT("test-secret", 15*time.Minute, 24*time.Hour)

	storeID := int64(10)
	token, err := GenerateAccessToken(7, "aibek", "seller", &storeID)
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.EmployeeID)
	assert.Equal(t, "aibek", claims.Login)
	assert.Equal(t, "seller", claims.Role)
	assert.NotNil(t, claims.StoreID)
	assert.Equal(t, int64(10), *claims.StoreID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	ConfigureJWT("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := GenerateRefreshToken(7)
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.EmployeeID)
	assert.Nil(t, claims.StoreID)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	ConfigureJWT("first-secret", 15*time.Minute, 24*time.Hour)
	token, err := GenerateAccessToken(7, "aibek", "seller", nil)
	assert.NoError(t, err)

	ConfigureJWT("second-secret", 15*time.Minute, 24*time.Hour)
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	ConfigureJWT("test-secret", 15*time.Minute, 24*time.Hour)
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
