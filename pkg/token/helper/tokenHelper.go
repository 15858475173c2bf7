package helper

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	userClaim      = "user"
	sessionClaim   = "sid"
	refreshUserKey = "userId"
)

// GenerateAccessToken signs a short-lived token carrying the user and the session the token
// belongs to.
func GenerateAccessToken(user *model.User, sessionID string, key *rsa.PrivateKey, expirationInSeconds int) (string, error) {
	unixTime := time.Now().Unix()

	token, err := jwt.NewBuilder().
		IssuedAt(time.Unix(unixTime, 0)).
		Expiration(time.Unix(unixTime+int64(expirationInSeconds), 0)).
		Claim(userClaim, user).
		Claim(sessionClaim, sessionID).
		Build()
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	if err != nil {
		return "", err
	}

	return string(signed), nil
}

type AccessTokenClaims struct {
	User      *model.User
	SessionID string
}

func ValidateAccessToken(tokenString string, key *rsa.PublicKey) (*AccessTokenClaims, error) {
	token, err := jwt.Parse([]byte(tokenString), jwt.WithKey(jwa.RS256, key))
	if err != nil {
		return nil, err
	}

	return AccessTokenClaimsFrom(token)
}

// AccessTokenClaimsFrom extracts the claims of an already verified access token.
func AccessTokenClaimsFrom(token jwt.Token) (*AccessTokenClaims, error) {
	userData, ok := token.Get(userClaim)
	if !ok {
		return nil, errors.New("user not found in claims")
	}

	bytes, err := json.Marshal(userData)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	if err := json.Unmarshal(bytes, user); err != nil {
		return nil, err
	}

	sessionID, ok := token.Get(sessionClaim)
	if !ok {
		return nil, fmt.Errorf("%s not found in claims", sessionClaim)
	}

	sid, ok := sessionID.(string)
	if !ok || sid == "" {
		return nil, fmt.Errorf("%s claim is not a valid session id", sessionClaim)
	}

	return &AccessTokenClaims{
		User:      user,
		SessionID: sid,
	}, nil
}

type refreshToken struct {
	SignedString string
	TokenId      string
	SessionID    string
	ExpiresIn    time.Duration
}

// GenerateRefreshToken signs a refresh token for the given session. An empty sessionID opens a new
// session identified by the id of the token itself.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func GenerateRefreshToken(user *model.User, sessionID string, secretKey string, expirationInSeconds int) (*refreshToken, error) {
	currentTime := time.Now()
	tokenExpiration := currentTime.Add(time.Duration(expirationInSeconds) * time.Second)

	tokenId := uuid.NewString()
	if sessionID == "" {
		sessionID = tokenId
	}

	token, err := jwt.NewBuilder().
		JwtID(tokenId).
		IssuedAt(currentTime).
		Expiration(tokenExpiration).
		Claim(refreshUserKey, user.ID).
		Claim(sessionClaim, sessionID).
		Build()
	if err != nil {
		return nil, err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secretKey)))
	if err != nil {
		return nil, err
	}

	return &refreshToken{
		SignedString: string(signed),
		TokenId:      tokenId,
		SessionID:    sessionID,
		ExpiresIn:    tokenExpiration.Sub(currentTime),
	}, nil
}

type refreshTokenClaims struct {
	UserId    uint
	ID        string
	SessionID string
	ExpiresIn time.Duration
	IssuedAt  int64
}

//goland:noinspection GoExportedFuncWithUnexportedType
func ValidateRefreshToken(tokenString string, secretKey string) (*refreshTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256, []byte(secretKey)),
	)
	if err != nil {
		return nil, err
	}

	userId, ok := token.Get(refreshUserKey)
	if !ok {
		return nil, errors.New("UserId not found in claims")
	}

	id, ok := userId.(float64)
	if !ok {
		return nil, fmt.Errorf("%s claim is not a number", refreshUserKey)
	}

	sessionID, ok := token.Get(sessionClaim)
	if !ok {
		return nil, fmt.Errorf("%s not found in claims", sessionClaim)
	}

	return &refreshTokenClaims{
		UserId:    uint(id),
		ID:        token.JwtID(),
		SessionID: fmt.Sprintf("%v", sessionID),
		ExpiresIn: time.Until(token.Expiration()),
		IssuedAt:  token.IssuedAt().Unix(),
	}, nil
}
