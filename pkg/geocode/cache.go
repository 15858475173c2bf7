package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRedisCache(logger *slog.Logger, client *redis.Client, ttl time.Duration) *redisCache {
	return &redisCache{logger: logger, client: client, ttl: ttl}
}

type redisCache struct {
	logger *slog.Logger
	client *redis.Client
	ttl    time.Duration
}

func cacheKey(query string) string {
	return "geocode:" + query
}

// get treats every failure as a miss so a broken cache only costs a request.
func (r redisCache) get(ctx context.Context, query string) ([]Place, bool) {
	data, err := r.client.WithContext(ctx).Get(cacheKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to read geocoding cache", "error", err)
		return nil, false
	}

	var places []Place
	if err := json.Unmarshal(data, &places); err != nil {
		r.logger.WarnContext(ctx, "Failed to decode geocoding cache", "error", err)
		return nil, false
	}
	return places, true
}

func (r redisCache) set(ctx context.Context, query string, places []Place) {
	data, err := json.Marshal(places)
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to encode geocoding cache", "error", err)
		return
	}

	if err := r.client.WithContext(ctx).Set(cacheKey(query), data, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "Failed to write geocoding cache", "error", err)
	}
}
