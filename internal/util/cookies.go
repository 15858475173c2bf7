package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/pkg/token"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// SetCookies mirrors the issued tokens in cookies so browser clients don't have to store them.
// The refresh token cookie is only sent to the refresh endpoint.
func SetCookies(c *gin.Context, tokens *token.Tokens, sameSiteMode http.SameSite, hostname string, refreshTokenExpirationSeconds int) {
	c.SetSameSite(sameSiteMode)
	c.SetCookie(accessTokenCookie, tokens.AccessToken, int(tokens.ExpiresIn), "/", hostname, true, true)
	c.SetCookie(refreshTokenCookie, tokens.RefreshToken, refreshTokenExpirationSeconds, "/refresh", hostname, true, true)
}

func ClearCookies(c *gin.Context, sameSiteMode http.SameSite, hostname string) {
	c.SetSameSite(sameSiteMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", hostname, true, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/refresh", hostname, true, true)
}

// RefreshTokenFromCookie returns the refresh token cookie, if any.
func RefreshTokenFromCookie(c *gin.Context) (string, bool) {
	value, err := c.Cookie(refreshTokenCookie)
	return value, err == nil && value != ""
}
