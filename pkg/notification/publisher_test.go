package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Queued(t *testing.T) {
	assert.True(t, Publisher{}.Queued())
}

func TestPublisher_Publish_Invalid(t *testing.T) {
	err := Publisher{}.EventCreated(context.Background(), " ", blockParty())

	require.EqualError(t, err, "notification has no recipient")
}
