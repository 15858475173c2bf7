package inttest

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"log/slog"
	"testing"

	"github.com/hotspot-events/hotspot/internal/middleware"
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/hotspot-events/hotspot/pkg/token/helper"
	"github.com/stretchr/testify/require"
)

// Authentication signs access tokens accepted by its middleware.
type Authentication struct {
	Middleware middleware.AuthenticationMiddleware
	key        *rsa.PrivateKey
}

// SetupAuthentication creates an authentication middleware with a freshly generated key. Basic
// authentication is answered by signInService which may be nil if no route needs it.
func SetupAuthentication(t *testing.T, signInService interface {
	SignIn(ctx context.Context, email string, password string) (*model.User, error)
}) *Authentication {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate key")

	return &Authentication{
		Middleware: middleware.NewAuthentication(slog.New(slog.DiscardHandler), &key.PublicKey, signInService, middleware.NewRegistration("")),
		key:        key,
	}
}

// Token returns an access token for user within the given session.
func (a *Authentication) Token(t *testing.T, user *model.User, sessionID string) string {
	t.Helper()

	token, err := helper.GenerateAccessToken(user, sessionID, a.key, 300)
	require.NoError(t, err, "failed to generate access token")
	return token
}

// PrivateKey returns the key access tokens are signed with so services issuing tokens can share it.
func (a *Authentication) PrivateKey() *rsa.PrivateKey {
	return a.key
}
