package notification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hotspot-events/hotspot/pkg/model"
)

// Message is what gets queued for the consumer to email.
type Message struct {
	Kind      string      `json:"kind"`
	Recipient string      `json:"recipient"`
	Event     model.Event `json:"event"`
}

func (m Message) validate() error {
	if m.Kind != KindCreated && m.Kind != KindReminder {
		return fmt.Errorf("unknown notification kind %q", m.Kind)
	}
	if strings.TrimSpace(m.Recipient) == "" {
		return errors.New("notification has no recipient")
	}
	if missing := m.Event.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("notification event is missing %s", strings.Join(missing, ", "))
	}
	return nil
}
