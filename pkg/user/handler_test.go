package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/pkg/config"
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/hotspot-events/hotspot/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_RefreshToken_Cookie(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 123}
	userService.
		On("FindById", uint(123)).
		Return(user, nil)
	tokenService := &mockTokenService{}
	refreshTokenData := &token.RefreshTokenData{
		SignedToken: "signed-token",
		ID:          uuid.New(),
		UserId:      123,
		SessionID:   "session",
	}
	tokenService.
		On("ValidateRefreshToken", "token").
		Return(refreshTokenData, nil)
	tokens := &token.Tokens{
		AccessToken:  "accessToken",
		TokenType:    "bearer",
		RefreshToken: "refreshToken",
		ExpiresIn:    312,
	}
	tokenService.
		On("GetTokens", user, refreshTokenData).
		Return(tokens, nil)
	handler := NewHandler(newConfig(), userService, tokenService, &mockSessionStore{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	request := newPost(t, "/refresh", nil)
	cookie := &http.Cookie{Name: "refreshToken", Value: "token"}
	require.NoError(t, cookie.Valid())
	request.AddCookie(cookie)
	c.Request = request

	handler.RefreshToken(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 2)
	expectedAccessTokenCookie := "accessToken=accessToken; Path=/; Domain=hostname; Max-Age=312; HttpOnly; Secure; SameSite=Strict"
	assert.Equal(t, expectedAccessTokenCookie, cookies[0].Raw)
	expectedRefreshTokenCookie := "refreshToken=refreshToken; Path=/refresh; Domain=hostname; Max-Age=86400; HttpOnly; Secure; SameSite=Strict"
	assert.Equal(t, expectedRefreshTokenCookie, cookies[1].Raw)
	tokenService.AssertExpectations(t)
	userService.AssertExpectations(t)
}

func TestHandler_RefreshToken_RequestBody(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 123}
	userService.
		On("FindById", uint(123)).
		Return(user, nil)
	tokenService := &mockTokenService{}
	refreshTokenData := &token.RefreshTokenData{
		SignedToken: "signed-token",
		ID:          uuid.New(),
		UserId:      123,
		SessionID:   "session",
	}
	tokenService.
		On("ValidateRefreshToken", "token").
		Return(refreshTokenData, nil)
	tokens := &token.Tokens{
		AccessToken:  "accessToken",
		TokenType:    "bearer",
		RefreshToken: "refreshToken",
		ExpiresIn:    312,
	}
	tokenService.
		On("GetTokens", user, refreshTokenData).
		Return(tokens, nil)
	handler := NewHandler(newConfig(), userService, tokenService, &mockSessionStore{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/refresh", &RefreshTokenRequest{RefreshToken: "token"})

	handler.RefreshToken(c)

	require.Len(t, c.Errors.Errors(), 0)
	var body token.Tokens
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "accessToken", body.AccessToken)
	assert.Equal(t, "refreshToken", body.RefreshToken)
	tokenService.AssertExpectations(t)
	userService.AssertExpectations(t)
}

func TestHandler_RefreshToken_Missing(t *testing.T) {
	handler := NewHandler(newConfig(), &mockUserService{}, &mockTokenService{}, &mockSessionStore{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/refresh", &RefreshTokenRequest{})

	handler.RefreshToken(c)

	require.Len(t, c.Errors.Errors(), 1)
	assert.Contains(t, c.Errors.Last().Error(), "refresh token not found")
}

func TestHandler_SignIn_Cookies(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 123}
	tokenService := &mockTokenService{}
	tokens := &token.Tokens{
		AccessToken:  "accessToken",
		TokenType:    "bearer",
		RefreshToken: "refreshToken",
		ExpiresIn:    312,
	}
	tokenService.
		On("GetTokens", user, (*token.RefreshTokenData)(nil)).
		Return(tokens, nil)
	handler := NewHandler(newConfig(), userService, tokenService, &mockSessionStore{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", user)
	c.Request = newPost(t, "/tokens", nil)

	handler.SignIn(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 2)
	expectedAccessTokenCookie := "accessToken=accessToken; Path=/; Domain=hostname; Max-Age=312; HttpOnly; Secure; SameSite=Strict"
	assert.Equal(t, expectedAccessTokenCookie, cookies[0].Raw)
	tokenService.AssertExpectations(t)
	userService.AssertExpectations(t)
}

func TestHandler_SignOut(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 123}
	tokenService := &mockTokenService{}
	tokenService.
		On("SignOut", uint(123)).
		Return(nil)
	sessionStore := &mockSessionStore{}
	sessionStore.
		On("Clear", "session").
		Return(nil)
	handler := NewHandler(newConfig(), userService, tokenService, sessionStore)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", user)
	c.Set("session", "session")
	c.Request = newPost(t, "/users", nil)

	handler.SignOut(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "accessToken=; Path=/; Domain=hostname; Max-Age=0; HttpOnly; Secure; SameSite=Strict", cookies[0].Raw)
	assert.Equal(t, "refreshToken=; Path=/refresh; Domain=hostname; Max-Age=0; HttpOnly; Secure; SameSite=Strict", cookies[1].Raw)
	tokenService.AssertExpectations(t)
	sessionStore.AssertExpectations(t)
}

func newConfig() config.Config {
	return config.Config{
		Hostname:     "hostname",
		SameSiteMode: http.SameSiteStrictMode,
		Authentication: config.Authentication{
			RefreshTokenExpirationSeconds: 86400,
		},
	}
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) SignUp(ctx context.Context, email string, password string) (*model.User, error) {
	panic("implement me")
}

func (m *mockUserService) FindById(ctx context.Context, id uint) (*model.User, error) {
	called := m.Called(id)
	return called.Get(0).(*model.User), called.Error(1)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GetTokens(ctx context.Context, user *model.User, previousRefreshToken *token.RefreshTokenData) (*token.Tokens, error) {
	called := m.Called(user, previousRefreshToken)
	return called.Get(0).(*token.Tokens), called.Error(1)
}

func (m *mockTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*token.RefreshTokenData, error) {
	called := m.Called(tokenString)
	return called.Get(0).(*token.RefreshTokenData), called.Error(1)
}

func (m *mockTokenService) SignOut(ctx context.Context, userId uint) error {
	called := m.Called(userId)
	return called.Error(0)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Clear(ctx context.Context, sessionID string) error {
	called := m.Called(sessionID)
	return called.Error(0)
}

func newPost(t *testing.T, path string, jsonBody any) *http.Request {
	body, err := json.Marshal(jsonBody)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	return req
}
