package errdef_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hotspot-events/hotspot/internal/errdef"

	"github.com/stretchr/testify/assert"
)

func TestIsForbidden(t *testing.T) {
	assert.False(t, errdef.IsForbidden(errors.New("some error")))
	assert.True(t, errdef.IsForbidden(errdef.NewForbidden("some error")))
}

func TestIsBadRequest(t *testing.T) {
	assert.False(t, errdef.IsBadRequest(errors.New("some error")))
	assert.True(t, errdef.IsBadRequest(errdef.NewBadRequest("some error")))
}

func TestIsDuplicate(t *testing.T) {
	assert.False(t, errdef.IsDuplicated(errors.New("some error")))
	assert.True(t, errdef.IsDuplicated(errdef.NewDuplicated("some error")))
}

func TestIsUnauthorized(t *testing.T) {
	assert.False(t, errdef.IsUnauthorized(errors.New("some error")))
	assert.True(t, errdef.IsUnauthorized(errdef.NewUnauthorized("some error")))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, errdef.IsNotFound(errors.New("some error")))
	assert.True(t, errdef.IsNotFound(errdef.NewNotFound("some error")))
}

func TestIsConflict(t *testing.T) {
	assert.False(t, errdef.IsConflict(errors.New("some error")))
	assert.True(t, errdef.IsConflict(errdef.NewConflict("some error")))
}

func TestIsUnsupportedMediaType(t *testing.T) {
	assert.False(t, errdef.IsUnsupportedMediaType(errors.New("some error")))
	assert.True(t, errdef.IsUnsupportedMediaType(errdef.NewUnsupportedMediaType("some error")))
}

func TestErrorsAreWrappable(t *testing.T) {
	err := fmt.Errorf("finding event: %w", errdef.NewNotFound("event %q not found", "abc"))

	assert.True(t, errdef.IsNotFound(err))
	assert.Equal(t, `finding event: event "abc" not found`, err.Error())
}
