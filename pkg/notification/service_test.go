package notification

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/go-mail/mail"
	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockParty() model.Event {
	return model.Event{
		ID:            uuid.MustParse("6f1c2a52-1d0e-4a6b-9d43-2f0a4c1e9b77"),
		EventName:     "Block Party",
		EventDate:     "2025-06-01",
		EventTime:     "18:00",
		EventLocation: "City Hall",
	}
}

func TestService_EventCreated(t *testing.T) {
	dialer := &recordingDialer{}
	service := NewService(slog.New(slog.DiscardHandler), dialer, "Hotspot <no-reply@hotspot.events>", "https://hotspot.events", time.UTC)

	err := service.EventCreated(context.Background(), "someone@example.org", blockParty())

	require.NoError(t, err)
	require.Len(t, dialer.messages, 1)
	m := dialer.messages[0]
	assert.Equal(t, []string{"someone@example.org"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Hotspot <no-reply@hotspot.events>"}, m.GetHeader("From"))
	assert.Equal(t, []string{"New event: Block Party"}, m.GetHeader("Subject"))

	raw := render(t, m)
	assert.Contains(t, raw, "Location: City Hall")
	assert.Contains(t, raw, "https://hotspot.events/events/6f1c2a52-1d0e-4a6b-9d43-2f0a4c1e9b77")
	assert.Contains(t, raw, `filename="block-party.ics"`)
	assert.Contains(t, raw, "Content-Type: text/calendar")
}

func TestService_EventReminder(t *testing.T) {
	dialer := &recordingDialer{}
	service := NewService(slog.New(slog.DiscardHandler), dialer, "no-reply@hotspot.events", "", time.UTC)

	err := service.EventReminder(context.Background(), "someone@example.org", blockParty())

	require.NoError(t, err)
	require.Len(t, dialer.messages, 1)
	assert.Equal(t, []string{"Reminder: Block Party is coming up"}, dialer.messages[0].GetHeader("Subject"))
	assert.NotContains(t, render(t, dialer.messages[0]), "View the event")
}

func TestService_Send_DialerFails(t *testing.T) {
	dialer := &recordingDialer{err: errors.New("connection refused")}
	service := NewService(slog.New(slog.DiscardHandler), dialer, "no-reply@hotspot.events", "", time.UTC)

	err := service.EventCreated(context.Background(), "someone@example.org", blockParty())

	require.ErrorContains(t, err, "connection refused")
}

func TestService_Send_Invalid(t *testing.T) {
	incomplete := blockParty()
	incomplete.EventLocation = " "

	tests := map[string]struct {
		message Message
		error   string
	}{
		"UnknownKind":  {message: Message{Kind: "digest", Recipient: "someone@example.org", Event: blockParty()}, error: `unknown notification kind "digest"`},
		"NoRecipient":  {message: Message{Kind: KindCreated, Event: blockParty()}, error: "notification has no recipient"},
		"MissingField": {message: Message{Kind: KindCreated, Recipient: "someone@example.org", Event: incomplete}, error: "notification event is missing eventLocation"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			dialer := &recordingDialer{}
			service := NewService(slog.New(slog.DiscardHandler), dialer, "no-reply@hotspot.events", "", time.UTC)

			err := service.Send(context.Background(), test.message)

			require.ErrorContains(t, err, test.error)
			assert.Empty(t, dialer.messages)
		})
	}
}

func render(t *testing.T, m *mail.Message) string {
	t.Helper()
	var buffer bytes.Buffer
	_, err := m.WriteTo(&buffer)
	require.NoError(t, err)
	return buffer.String()
}

type recordingDialer struct {
	messages []*mail.Message
	err      error
}

func (r *recordingDialer) DialAndSend(m ...*mail.Message) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, m...)
	return nil
}
