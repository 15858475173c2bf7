package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/internal/handler"
	"github.com/hotspot-events/hotspot/internal/util"
	"github.com/hotspot-events/hotspot/pkg/config"
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/hotspot-events/hotspot/pkg/token"
)

func NewHandler(config config.Config, userService userService, tokenService tokenService, sessionStore sessionStore) Handler {
	return Handler{
		config:       config,
		userService:  userService,
		tokenService: tokenService,
		sessionStore: sessionStore,
	}
}

type Handler struct {
	config       config.Config
	userService  userService
	tokenService tokenService
	sessionStore sessionStore
}

type userService interface {
	SignUp(ctx context.Context, email string, password string) (*model.User, error)
	FindById(ctx context.Context, id uint) (*model.User, error)
}

type tokenService interface {
	GetTokens(ctx context.Context, user *model.User, previousRefreshToken *token.RefreshTokenData) (*token.Tokens, error)
	ValidateRefreshToken(ctx context.Context, tokenString string) (*token.RefreshTokenData, error)
	SignOut(ctx context.Context, userId uint) error
}

type sessionStore interface {
	Clear(ctx context.Context, sessionID string) error
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,gte=8,lte=128"`
}

// SignUp user
func (h Handler) SignUp(c *gin.Context) {
	// swagger:route POST /users signUp
	//
	// Sign up
	//
	// Sign up a user. This endpoint is publicly accessible and therefor anyone can sign up.
	//
	// responses:
	//   201: User
	//   400: Error
	//   409: Error
	//   415: Error
	var request SignUpRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// SignIn user
func (h Handler) SignIn(c *gin.Context) {
	// swagger:route POST /tokens signIn
	//
	// Sign in
	//
	// Sign in using basic authentication. A new session is opened and its tokens are returned.
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   201: Tokens
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokens, err := h.tokenService.GetTokens(c.Request.Context(), user, nil)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.setCookies(c, tokens)
	c.JSON(http.StatusCreated, tokens)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken user
func (h Handler) RefreshToken(c *gin.Context) {
	// swagger:route POST /refresh refreshToken
	//
	// Refresh tokens
	//
	// Exchange a refresh token, given in the body or as a cookie, for a new pair of tokens within the same session.
	//
	// responses:
	//   201: Tokens
	//   400: Error
	//   401: Error
	refreshToken, ok := util.RefreshTokenFromCookie(c)
	if !ok {
		var request RefreshTokenRequest
		if err := handler.DataBinder(c, &request); err != nil {
			_ = c.Error(err)
			return
		}
		refreshToken = request.RefreshToken
	}

	if refreshToken == "" {
		_ = c.Error(errdef.NewBadRequest("refresh token not found in body or cookie"))
		return
	}

	refreshTokenData, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.FindById(c.Request.Context(), refreshTokenData.UserId)
	if err != nil {
		if errdef.IsNotFound(err) {
			_ = c.Error(errdef.NewUnauthorized("user of refresh token no longer exists"))
		} else {
			_ = c.Error(err)
		}
		return
	}

	tokens, err := h.tokenService.GetTokens(c.Request.Context(), user, refreshTokenData)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.setCookies(c, tokens)
	c.JSON(http.StatusCreated, tokens)
}

func (h Handler) setCookies(c *gin.Context, tokens *token.Tokens) {
	util.SetCookies(c, tokens, h.config.SameSiteMode, h.config.Hostname, h.config.Authentication.RefreshTokenExpirationSeconds)
}

// Me user
func (h Handler) Me(c *gin.Context) {
	// swagger:route GET /me me
	//
	// User details
	//
	// Current user details
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	current, err := h.userService.FindById(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, current)
}

// SignOut user
func (h Handler) SignOut(c *gin.Context) {
	// swagger:route DELETE /users signOut
	//
	// Sign out
	//
	// Sign out user. All refresh tokens of the user are revoked and the state of the current session (drafts, profile) is discarded. Access tokens already issued stay valid until they expire.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.tokenService.SignOut(c.Request.Context(), user.ID); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.sessionStore.Clear(c.Request.Context(), sessionID); err != nil {
		_ = c.Error(err)
		return
	}

	util.ClearCookies(c, h.config.SameSiteMode, h.config.Hostname)
	c.Status(http.StatusOK)
}
