package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"time"

	"github.com/go-mail/mail"
	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/pkg/calendar"
	"github.com/hotspot-events/hotspot/pkg/model"
)

const (
	KindCreated  = "created"
	KindReminder = "reminder"
)

func NewService(logger *slog.Logger, dialer dialer, from string, uiURL string, location *time.Location) *Service {
	return &Service{
		logger:   logger,
		dialer:   dialer,
		from:     from,
		uiURL:    uiURL,
		location: location,
	}
}

type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type Service struct {
	logger   *slog.Logger
	dialer   dialer
	from     string
	uiURL    string
	location *time.Location
}

// EventCreated emails the details of a newly created event to recipient.
func (s Service) EventCreated(ctx context.Context, recipient string, event model.Event) error {
	return s.Send(ctx, Message{Kind: KindCreated, Recipient: recipient, Event: event})
}

// EventReminder emails a reminder of an upcoming event to recipient.
func (s Service) EventReminder(ctx context.Context, recipient string, event model.Event) error {
	return s.Send(ctx, Message{Kind: KindReminder, Recipient: recipient, Event: event})
}

func (s Service) Send(ctx context.Context, message Message) error {
	if err := message.validate(); err != nil {
		return err
	}

	m, err := s.compose(message)
	if err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send %s email for event %q: %v", message.Kind, message.Event.EventName, err)
	}

	s.logger.InfoContext(ctx, "Sent email", "kind", message.Kind, "event", message.Event.ID)
	return nil
}

func (s Service) compose(message Message) (*mail.Message, error) {
	event := message.Event
	ics, err := calendar.Export(event, s.location)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	err = bodyTemplate.Execute(&body, struct {
		Heading string
		Event   model.Event
		Link    string
	}{
		Heading: heading(message.Kind),
		Event:   event,
		Link:    s.link(event),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s email: %v", message.Kind, err)
	}

	m := mail.NewMessage(mail.SetEncoding(mail.Unencoded))
	m.SetHeader("From", s.from)
	m.SetHeader("To", message.Recipient)
	m.SetHeader("Subject", subject(message.Kind, event))
	m.SetBody("text/html", body.String())
	m.Attach(calendar.FileName(event),
		mail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(ics)
			return err
		}),
		mail.SetHeader(map[string][]string{"Content-Type": {calendar.ContentType}}),
	)
	return m, nil
}

func (s Service) link(event model.Event) string {
	if s.uiURL == "" || event.ID == uuid.Nil {
		return ""
	}
	return fmt.Sprintf("%s/events/%s", s.uiURL, event.ID)
}

func subject(kind string, event model.Event) string {
	if kind == KindReminder {
		return fmt.Sprintf("Reminder: %s is coming up", event.EventName)
	}
	return fmt.Sprintf("New event: %s", event.EventName)
}

func heading(kind string) string {
	if kind == KindReminder {
		return "Your event is coming up"
	}
	return "Your event has been scheduled"
}

var bodyTemplate = template.Must(template.New("email").Parse(`<h1>{{.Heading}}</h1>
<p><strong>{{.Event.EventName}}</strong></p>
<ul>
<li>Date: {{.Event.EventDate}}</li>
<li>Time: {{.Event.EventTime}}</li>
<li>Location: {{.Event.EventLocation}}</li>
</ul>
{{if .Link}}<p><a href="{{.Link}}">View the event</a></p>{{end}}
<p>Open the attached calendar file to add the event to your calendar.</p>
`))
