package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/pkg/config"
	"github.com/hotspot-events/hotspot/pkg/geocode"
	"github.com/hotspot-events/hotspot/pkg/model"
)

func NewService(logger *slog.Logger, config config.Config, repository eventRepository, notifier notifier, alerter alerter, locator locator) *Service {
	return &Service{
		logger:     logger,
		location:   config.Location(),
		mapConfig:  config.Map,
		repository: repository,
		notifier:   notifier,
		alerter:    alerter,
		locator:    locator,
	}
}

type eventRepository interface {
	create(ctx context.Context, event *model.Event) error
	findById(ctx context.Context, id uuid.UUID) (*model.Event, error)
	search(ctx context.Context, query string) ([]model.Event, error)
	findUnreminded(ctx context.Context, fromDate string, toDate string) ([]model.Event, error)
	markReminded(ctx context.Context, id uuid.UUID, at time.Time) error
}

type notifier interface {
	EventCreated(ctx context.Context, recipient string, event model.Event) error
}

// queuer is implemented by notifiers which hand notifications off for later delivery.
type queuer interface {
	Queued() bool
}

type alerter interface {
	Broadcast(message string) int
}

type locator interface {
	Locate(ctx context.Context, query string) (*geocode.Place, error)
}

type Service struct {
	logger     *slog.Logger
	location   *time.Location
	mapConfig  config.Map
	repository eventRepository
	notifier   notifier
	alerter    alerter
	locator    locator
}

// Created is the outcome of creating an event. The event is stored even if notifying its creator failed.
// swagger:model
type Created struct {
	Event        *model.Event `json:"event"`
	Notification Notification `json:"notification"`
}

// Notification reports what became of the creator's email. Sent means it was delivered to the mail server while
// Queued means it was accepted for delivery by the notification queue.
type Notification struct {
	Sent   bool   `json:"sent"`
	Queued bool   `json:"queued,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Create stores the event on behalf of user. Once stored the creator is notified and an alert is broadcast, neither
// of which can undo the creation.
func (s Service) Create(ctx context.Context, user *model.User, fields model.Event) (*Created, error) {
	event := &model.Event{
		EventName:     strings.TrimSpace(fields.EventName),
		EventDate:     strings.TrimSpace(fields.EventDate),
		EventTime:     strings.TrimSpace(fields.EventTime),
		EventLocation: strings.TrimSpace(fields.EventLocation),
		UserID:        user.ID,
	}
	if err := s.validate(*event); err != nil {
		return nil, err
	}

	if err := s.repository.create(ctx, event); err != nil {
		return nil, err
	}

	created := &Created{Event: event}
	if err := s.notifier.EventCreated(ctx, user.Email, *event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to notify about created event", "event", event.ID, "error", err)
		created.Notification = Notification{Sent: false, Error: "failed to send email notification"}
	} else if q, ok := s.notifier.(queuer); ok && q.Queued() {
		created.Notification = Notification{Queued: true}
	} else {
		created.Notification = Notification{Sent: true}
	}

	s.alerter.Broadcast(fmt.Sprintf("New event scheduled: %s", event.EventName))
	return created, nil
}

func (s Service) validate(event model.Event) error {
	if missing := event.MissingFields(); len(missing) > 0 {
		return errdef.NewBadRequest("missing required fields: %s", strings.Join(missing, ", "))
	}
	if _, err := time.Parse(model.DateLayout, event.EventDate); err != nil {
		return errdef.NewBadRequest("eventDate must be formatted as YYYY-MM-DD")
	}
	if _, err := time.Parse(model.TimeLayout, event.EventTime); err != nil {
		return errdef.NewBadRequest("eventTime must be formatted as HH:MM")
	}
	return nil
}

func (s Service) FindById(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) Search(ctx context.Context, query string) ([]model.Event, error) {
	return s.repository.search(ctx, strings.TrimSpace(query))
}

// Detail of an event
// swagger:model
type Detail struct {
	Event *model.Event `json:"event"`
	Map   *Map         `json:"map,omitempty"`
}

// Map describes how to render the location of an event
type Map struct {
	Center  model.Coordinate `json:"center"`
	Zoom    int              `json:"zoom"`
	TileURL string           `json:"tileUrl"`
	Marker  Marker           `json:"marker"`
}

type Marker struct {
	Position model.Coordinate `json:"position"`
	Label    string           `json:"label"`
}

// Detail returns the event together with a map of its location. The map is left out if the location can't be
// resolved.
func (s Service) Detail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Event: event}

	place, err := s.locator.Locate(ctx, event.EventLocation)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to locate event", "event", event.ID, "error", err)
		return detail, nil
	}
	if place == nil {
		return detail, nil
	}

	coordinate, err := place.Coordinate()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to locate event", "event", event.ID, "error", err)
		return detail, nil
	}

	detail.Map = &Map{
		Center:  *coordinate,
		Zoom:    s.mapConfig.Zoom,
		TileURL: s.mapConfig.TileURL,
		Marker: Marker{
			Position: *coordinate,
			Label:    event.EventLocation,
		},
	}
	return detail, nil
}

// FindUpcoming returns the events nobody was reminded of yet which start after from and no later than until.
func (s Service) FindUpcoming(ctx context.Context, from time.Time, until time.Time) ([]model.Event, error) {
	from = from.In(s.location)
	until = until.In(s.location)

	candidates, err := s.repository.findUnreminded(ctx, from.Format(model.DateLayout), until.Format(model.DateLayout))
	if err != nil {
		return nil, err
	}

	var events []model.Event
	for _, event := range candidates {
		start, err := event.Start(s.location)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping event", "event", event.ID, "error", err)
			continue
		}
		if start.After(from) && !start.After(until) {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s Service) MarkReminded(ctx context.Context, id uuid.UUID) error {
	return s.repository.markReminded(ctx, id, time.Now().UTC())
}
