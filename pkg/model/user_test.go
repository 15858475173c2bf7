package model_test

import (
	"context"
	"testing"

	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	id := uint(1000)
	email := "some@thing.dk"
	user := &model.User{
		ID:    id,
		Email: email,
	}

	ctx := context.Background()

	got, ok := model.GetUserFromContext(ctx)
	assert.Nil(t, got, "want nil when no user is in the context")
	assert.False(t, ok, "want false when no user is in the context")

	ctx = model.NewContextWithUser(ctx, user)

	got, ok = model.GetUserFromContext(ctx)
	assert.True(t, ok)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, email, got.Email)
}

func TestSessionIDContext(t *testing.T) {
	ctx := context.Background()

	_, ok := model.GetSessionIDFromContext(ctx)
	assert.False(t, ok)

	_, ok = model.GetSessionIDFromContext(model.NewContextWithSessionID(ctx, ""))
	assert.False(t, ok, "want an empty session id to count as missing")

	id, ok := model.GetSessionIDFromContext(model.NewContextWithSessionID(ctx, "some-session"))
	assert.True(t, ok)
	assert.Equal(t, "some-session", id)
}
