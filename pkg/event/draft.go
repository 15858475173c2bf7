package event

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/pkg/model"
)

const draftField = "draft"

// Draft is an event being filled in field by field. It lives in the session until it's submitted or reset.
// swagger:model
type Draft struct {
	EventName     string   `json:"eventName"`
	EventDate     string   `json:"eventDate"`
	EventTime     string   `json:"eventTime"`
	EventLocation string   `json:"eventLocation"`
	Suggestions   []string `json:"suggestions"`
}

func (d Draft) event() model.Event {
	return model.Event{
		EventName:     d.EventName,
		EventDate:     d.EventDate,
		EventTime:     d.EventTime,
		EventLocation: d.EventLocation,
	}
}

func NewDraftService(logger *slog.Logger, store sessionStore, suggester suggester, creator creator) *DraftService {
	return &DraftService{
		logger:    logger,
		store:     store,
		suggester: suggester,
		creator:   creator,
	}
}

type sessionStore interface {
	Get(ctx context.Context, sessionID string, field string, v any) (bool, error)
	Set(ctx context.Context, sessionID string, field string, v any) error
	Delete(ctx context.Context, sessionID string, fields ...string) error
}

type suggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}

type creator interface {
	Create(ctx context.Context, user *model.User, fields model.Event) (*Created, error)
}

type DraftService struct {
	logger    *slog.Logger
	store     sessionStore
	suggester suggester
	creator   creator
}

func (s DraftService) Get(ctx context.Context, sessionID string) (Draft, error) {
	draft := Draft{Suggestions: []string{}}
	if _, err := s.store.Get(ctx, sessionID, draftField, &draft); err != nil {
		return Draft{}, err
	}
	if draft.Suggestions == nil {
		draft.Suggestions = []string{}
	}
	return draft, nil
}

// UpdateField sets a single field of the draft. Changing the location refreshes the suggestions, a failed lookup
// leaves them empty without failing the update.
func (s DraftService) UpdateField(ctx context.Context, sessionID string, name string, value string) (Draft, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}

	switch name {
	case "eventName":
		draft.EventName = value
	case "eventDate":
		draft.EventDate = value
	case "eventTime":
		draft.EventTime = value
	case "eventLocation":
		draft.EventLocation = value
		draft.Suggestions = s.suggest(ctx, value)
	default:
		return Draft{}, errdef.NewBadRequest("unknown field %q", name)
	}

	if err := s.store.Set(ctx, sessionID, draftField, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

func (s DraftService) suggest(ctx context.Context, location string) []string {
	suggestions, err := s.suggester.Suggest(ctx, location)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to suggest locations", "error", err)
		return []string{}
	}
	if suggestions == nil {
		return []string{}
	}
	return suggestions
}

// SelectSuggestion replaces the location with the suggestion at index and clears the suggestions.
func (s DraftService) SelectSuggestion(ctx context.Context, sessionID string, index int) (Draft, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return Draft{}, err
	}

	if index < 0 || index >= len(draft.Suggestions) {
		return Draft{}, errdef.NewBadRequest("no suggestion at index %d", index)
	}

	draft.EventLocation = draft.Suggestions[index]
	draft.Suggestions = []string{}

	if err := s.store.Set(ctx, sessionID, draftField, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

func (s DraftService) Reset(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID, draftField)
}

// Submit creates an event from the draft. The draft is only discarded once the event is stored.
func (s DraftService) Submit(ctx context.Context, sessionID string, user *model.User) (*Created, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if missing := draft.event().MissingFields(); len(missing) > 0 {
		return nil, errdef.NewBadRequest("missing required fields: %s", strings.Join(missing, ", "))
	}

	created, err := s.creator.Create(ctx, user, draft.event())
	if err != nil {
		return nil, err
	}

	if err := s.Reset(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to reset draft", "event", created.Event.ID, "error", err)
	}
	return created, nil
}
