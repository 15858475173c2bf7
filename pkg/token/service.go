package token

import (
	"context"
	"crypto/rsa"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/hotspot-events/hotspot/pkg/token/helper"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(
	logger *slog.Logger,
	tokenRepository repository,
	privateKey *rsa.PrivateKey,
	accessTokenExpirationSeconds int,
	refreshTokenSecretKey string,
	refreshTokenExpirationSeconds int,
) *tokenService {
	return &tokenService{
		logger:                        logger,
		repository:                    tokenRepository,
		privateKey:                    privateKey,
		accessTokenExpirationSeconds:  accessTokenExpirationSeconds,
		refreshTokenSecretKey:         refreshTokenSecretKey,
		refreshTokenExpirationSeconds: refreshTokenExpirationSeconds,
	}
}

type repository interface {
	SetRefreshToken(ctx context.Context, userId uint, tokenId string, sessionID string, expiresIn time.Duration) error
	DeleteRefreshToken(ctx context.Context, userId uint, previousTokenId string) error
	DeleteRefreshTokens(ctx context.Context, userId uint) error
}

// Tokens domain object defining user tokens
// swagger:model
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	TokenType    string `json:"tokenType"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    uint   `json:"expiresIn"`
	SessionID    string `json:"-"`
}

type RefreshTokenData struct {
	SignedToken string
	ID          uuid.UUID
	UserId      uint
	SessionID   string
}

type tokenService struct {
	logger                        *slog.Logger
	repository                    repository
	privateKey                    *rsa.PrivateKey
	accessTokenExpirationSeconds  int
	refreshTokenSecretKey         string
	refreshTokenExpirationSeconds int
}

// GetTokens issues a new pair of tokens. Signing in passes an empty previousRefreshToken and opens a
// new session while refreshing consumes the previous token and stays within its session.
func (t tokenService) GetTokens(ctx context.Context, user *model.User, previousRefreshToken *RefreshTokenData) (*Tokens, error) {
	sessionID := ""
	if previousRefreshToken != nil {
		if err := t.repository.DeleteRefreshToken(ctx, user.ID, previousRefreshToken.ID.String()); err != nil {
			return nil, err
		}
		sessionID = previousRefreshToken.SessionID
	}

	refreshToken, err := helper.GenerateRefreshToken(user, sessionID, t.refreshTokenSecretKey, t.refreshTokenExpirationSeconds)
	if err != nil {
		return nil, fmt.Errorf("error generating refreshToken for user %d: %v", user.ID, err)
	}

	accessToken, err := helper.GenerateAccessToken(user, refreshToken.SessionID, t.privateKey, t.accessTokenExpirationSeconds)
	if err != nil {
		return nil, fmt.Errorf("error generating accessToken for user %d: %v", user.ID, err)
	}

	if err := t.repository.SetRefreshToken(ctx, user.ID, refreshToken.TokenId, refreshToken.SessionID, refreshToken.ExpiresIn); err != nil {
		return nil, err
	}

	return &Tokens{
		AccessToken:  accessToken,
		TokenType:    "bearer",
		RefreshToken: refreshToken.SignedString,
		ExpiresIn:    uint(t.accessTokenExpirationSeconds),
		SessionID:    refreshToken.SessionID,
	}, nil
}

func (t tokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*RefreshTokenData, error) {
	claims, err := helper.ValidateRefreshToken(tokenString, t.refreshTokenSecretKey)
	if err != nil {
		t.logger.InfoContext(ctx, "Unable to validate refresh token", "error", err)
		return nil, errdef.NewUnauthorized("unable to verify refresh token")
	}

	tokenId, err := uuid.Parse(claims.ID)
	if err != nil {
		t.logger.InfoContext(ctx, "Couldn't parse token id", "error", err, "claimsId", claims.ID)
		return nil, errdef.NewUnauthorized("unable to verify refresh token")
	}

	return &RefreshTokenData{
		SignedToken: tokenString,
		ID:          tokenId,
		UserId:      claims.UserId,
		SessionID:   claims.SessionID,
	}, nil
}

func (t tokenService) SignOut(ctx context.Context, userId uint) error {
	return t.repository.DeleteRefreshTokens(ctx, userId)
}
