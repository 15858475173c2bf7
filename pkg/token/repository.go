package token

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/hotspot-events/hotspot/internal/errdef"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(client *redis.Client) *redisRepository {
	return &redisRepository{client: client}
}

type redisRepository struct {
	client *redis.Client
}

func refreshTokenKey(userId uint, tokenId string) string {
	return fmt.Sprintf("refresh:%d:%s", userId, tokenId)
}

func (r redisRepository) SetRefreshToken(ctx context.Context, userId uint, tokenId string, sessionID string, expiresIn time.Duration) error {
	err := r.client.WithContext(ctx).Set(refreshTokenKey(userId, tokenId), sessionID, expiresIn).Err()
	if err != nil {
		return fmt.Errorf("failed to store refresh token for user %d: %v", userId, err)
	}
	return nil
}

// DeleteRefreshToken removes a refresh token so it can't be used again. Deleting a token which
// doesn't exist, because it expired or was already used, is an unauthorized attempt.
func (r redisRepository) DeleteRefreshToken(ctx context.Context, userId uint, tokenId string) error {
	deleted, err := r.client.WithContext(ctx).Del(refreshTokenKey(userId, tokenId)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete refresh token for user %d: %v", userId, err)
	}
	if deleted < 1 {
		return errdef.NewUnauthorized("refresh token %q is no longer valid", tokenId)
	}
	return nil
}

func (r redisRepository) DeleteRefreshTokens(ctx context.Context, userId uint) error {
	client := r.client.WithContext(ctx)

	keys, err := client.Keys(refreshTokenKey(userId, "*")).Result()
	if err != nil {
		return fmt.Errorf("failed to find refresh tokens for user %d: %v", userId, err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := client.Del(keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh tokens for user %d: %v", userId, err)
	}
	return nil
}
