// Package session keeps per-session state like event drafts and profiles in Redis. Everything
// stored for a session lives in one hash which expires together with the session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func key(sessionID string) string {
	return "session:" + sessionID
}

// Get decodes field of the session into v. It reports false if the field isn't set.
func (s Store) Get(ctx context.Context, sessionID string, field string, v any) (bool, error) {
	data, err := s.client.WithContext(ctx).HGet(key(sessionID), field).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %q of session: %v", field, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %q of session: %v", field, err)
	}
	return true, nil
}

// Set stores v as field of the session and extends the lifetime of the session.
func (s Store) Set(ctx context.Context, sessionID string, field string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q of session: %v", field, err)
	}

	_, err = s.client.WithContext(ctx).TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.HSet(key(sessionID), field, data)
		pipe.Expire(key(sessionID), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set %q of session: %v", field, err)
	}
	return nil
}

func (s Store) Delete(ctx context.Context, sessionID string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	if err := s.client.WithContext(ctx).HDel(key(sessionID), fields...).Err(); err != nil {
		return fmt.Errorf("failed to delete %v of session: %v", fields, err)
	}
	return nil
}

// Clear discards everything stored for the session.
func (s Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.WithContext(ctx).Del(key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %v", err)
	}
	return nil
}
