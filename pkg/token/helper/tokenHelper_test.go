package helper

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/hotspot-events/hotspot/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAccessToken(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate private key")
	user := &model.User{
		ID:       7,
		Email:    "email",
		Password: "pass",
	}

	token, err := GenerateAccessToken(user, "session-id", privateKey, 12)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, &privateKey.PublicKey)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.User.ID)
	assert.Equal(t, "email", claims.User.Email)
	assert.Empty(t, claims.User.Password, "want the password to never end up in a token")
	assert.Equal(t, "session-id", claims.SessionID)
}

func TestValidateAccessToken_WrongKey(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	token, err := GenerateAccessToken(&model.User{ID: 1}, "session-id", privateKey, 12)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, &otherKey.PublicKey)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	token, err := GenerateAccessToken(&model.User{ID: 1}, "session-id", privateKey, -60)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, &privateKey.PublicKey)
	assert.Error(t, err)
}

func TestGenerateRefreshToken(t *testing.T) {
	user := &model.User{ID: 1}

	secretKey := "secret"
	expiration := 12
	signedStringPrefix := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9."

	tokenData, err := GenerateRefreshToken(user, "", secretKey, expiration)
	require.NoError(t, err)

	assert.Equal(t, expiration, int(tokenData.ExpiresIn.Seconds()))
	assert.True(t, strings.HasPrefix(tokenData.SignedString, signedStringPrefix))
	assert.Equal(t, tokenData.TokenId, tokenData.SessionID, "want a new session to be identified by the token id")
}

func TestGenerateRefreshToken_KeepsSession(t *testing.T) {
	tokenData, err := GenerateRefreshToken(&model.User{ID: 1}, "existing-session", "secret", 12)
	require.NoError(t, err)

	assert.NotEqual(t, "existing-session", tokenData.TokenId)
	assert.Equal(t, "existing-session", tokenData.SessionID)
}

func TestValidateRefreshToken(t *testing.T) {
	user := &model.User{ID: 1}

	secretKey := "secret"
	expiration := 12

	tokenData, err := GenerateRefreshToken(user, "", secretKey, expiration)
	require.NoError(t, err)

	refreshTokenData, err := ValidateRefreshToken(tokenData.SignedString, secretKey)
	require.NoError(t, err)

	assert.Equal(t, user.ID, refreshTokenData.UserId)
	assert.Equal(t, tokenData.TokenId, refreshTokenData.ID)
	assert.Equal(t, tokenData.SessionID, refreshTokenData.SessionID)
	assert.InDelta(t, float64(expiration), refreshTokenData.ExpiresIn.Seconds(), 1)
	assert.WithinDuration(t, time.Now(), time.Unix(refreshTokenData.IssuedAt, 0), 1*time.Second)
}

func TestValidateRefreshToken_WrongSecret(t *testing.T) {
	tokenData, err := GenerateRefreshToken(&model.User{ID: 1}, "", "secret", 12)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(tokenData.SignedString, "another secret")
	assert.Error(t, err)
}
