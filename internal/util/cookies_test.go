package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCookies(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	tokens := &token.Tokens{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}

	SetCookies(c, tokens, http.SameSiteStrictMode, "hostname", 86400)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "accessToken=access; Path=/; Domain=hostname; Max-Age=900; HttpOnly; Secure; SameSite=Strict", cookies[0].Raw)
	assert.Equal(t, "refreshToken=refresh; Path=/refresh; Domain=hostname; Max-Age=86400; HttpOnly; Secure; SameSite=Strict", cookies[1].Raw)
}

func TestClearCookies(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	ClearCookies(c, http.SameSiteLaxMode, "hostname")

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "accessToken=; Path=/; Domain=hostname; Max-Age=0; HttpOnly; Secure; SameSite=Lax", cookies[0].Raw)
	assert.Equal(t, "refreshToken=; Path=/refresh; Domain=hostname; Max-Age=0; HttpOnly; Secure; SameSite=Lax", cookies[1].Raw)
}

func TestRefreshTokenFromCookie(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	request := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	request.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh"})
	c.Request = request

	value, ok := RefreshTokenFromCookie(c)

	assert.True(t, ok)
	assert.Equal(t, "refresh", value)
}
