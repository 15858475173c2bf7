package model

import "context"

type ctxKey int

const (
	userKey ctxKey = iota
	sessionKey
)

// NewContextWithUser returns a new [context.Context] that carries the signed in user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the user stored in ctx, if any.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}

// NewContextWithSessionID returns a new [context.Context] that carries the id of the session the
// request belongs to.
func NewContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}
