package middleware

import (
	"context"
	"crypto/rsa"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/hotspot-events/hotspot/pkg/token/helper"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Registration points clients which aren't signed in to where they can sign up or sign in.
type Registration struct {
	SignUp string `json:"signUp"`
	SignIn string `json:"signIn"`
}

// NewRegistration returns the registration surface of the service mounted at basePath.
func NewRegistration(basePath string) Registration {
	return Registration{
		SignUp: basePath + "/users",
		SignIn: basePath + "/tokens",
	}
}

func NewAuthentication(logger *slog.Logger, publicKey *rsa.PublicKey, signInService signInService, registration Registration) AuthenticationMiddleware {
	return AuthenticationMiddleware{
		logger:        logger,
		publicKey:     publicKey,
		signInService: signInService,
		registration:  registration,
	}
}

type signInService interface {
	SignIn(ctx context.Context, email string, password string) (*model.User, error)
}

// AuthenticationMiddleware gates access to routes. A single instance is created at startup and
// shared by every protected route group.
type AuthenticationMiddleware struct {
	logger        *slog.Logger
	publicKey     *rsa.PublicKey
	signInService signInService
	registration  Registration
}

// BasicAuthentication Inspiration: https://www.pandurang-waghulde.com/custom-http-basic-authentication-using-gin/
func (m AuthenticationMiddleware) BasicAuthentication(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		_ = c.Error(errdef.NewUnauthorized("invalid Authorization header format"))
		c.Abort()
		return
	}

	user, err := m.signInService.SignIn(c.Request.Context(), username, password)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	setUser(c, user)
	c.Next()
}

// TokenAuthentication only lets requests carrying a valid access token through. Anyone else is
// answered with the registration surface and the wrapped handlers never run.
func (m AuthenticationMiddleware) TokenAuthentication(c *gin.Context) {
	claims, err := m.parseRequest(c.Request)
	if err != nil {
		m.logger.InfoContext(c.Request.Context(), "Token not valid", "error", err)
		_ = c.Error(errdef.NewUnauthorized("token not valid"))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":  "sign in to continue",
			"signUp": m.registration.SignUp,
			"signIn": m.registration.SignIn,
		})
		return
	}

	setUser(c, claims.User)
	c.Set("session", claims.SessionID)
	c.Request = c.Request.WithContext(model.NewContextWithSessionID(c.Request.Context(), claims.SessionID))

	c.Next()
}

func setUser(c *gin.Context, user *model.User) {
	c.Set("user", user)
	c.Request = c.Request.WithContext(model.NewContextWithUser(c.Request.Context(), user))
}

func (m AuthenticationMiddleware) parseRequest(request *http.Request) (*helper.AccessTokenClaims, error) {
	token, err := jwt.ParseRequest(
		request,
		jwt.WithKey(jwa.RS256, m.publicKey),
		jwt.WithHeaderKey("Authorization"),
		jwt.WithCookieKey("accessToken"),
	)
	if err != nil {
		return nil, err
	}

	return helper.AccessTokenClaimsFrom(token)
}
