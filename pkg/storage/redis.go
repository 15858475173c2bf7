package storage

import (
	"fmt"

	"github.com/go-redis/redis"
	"github.com/hotspot-events/hotspot/pkg/config"
)

// NewRedis connects to the Redis instance holding refresh tokens, sessions and cached geocoding
// results.
func NewRedis(c config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", c.Host, c.Port),
	})

	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %v", err)
	}

	return client, nil
}
