// Package reminder emails the creators of events which are about to start.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/pkg/model"
)

// DefaultWindow is how far ahead events are looked up when no window is given.
const DefaultWindow = 24 * time.Hour

type eventService interface {
	FindUpcoming(ctx context.Context, from time.Time, until time.Time) ([]model.Event, error)
	MarkReminded(ctx context.Context, id uuid.UUID) error
}

type notifier interface {
	EventReminder(ctx context.Context, recipient string, event model.Event) error
}

type Option func(*Dispatcher)

// WithWindow sets how far ahead of now an event has to start to be reminded of.
func WithWindow(window time.Duration) Option {
	return func(d *Dispatcher) {
		if window > 0 {
			d.window = window
		}
	}
}

// WithDryRun only logs the reminders which would be sent. Nothing is emailed or marked.
func WithDryRun(dryRun bool) Option {
	return func(d *Dispatcher) {
		d.dryRun = dryRun
	}
}

func NewDispatcher(logger *slog.Logger, eventService eventService, notifier notifier, options ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:       logger,
		eventService: eventService,
		notifier:     notifier,
		window:       DefaultWindow,
		now:          time.Now,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

type Dispatcher struct {
	logger       *slog.Logger
	eventService eventService
	notifier     notifier
	window       time.Duration
	dryRun       bool
	now          func() time.Time
}

// Result counts the outcome of a single dispatch.
type Result struct {
	Sent    int
	Skipped int
	Failed  int
}

// Dispatch reminds the creator of every event starting within the window. A failure for one event is
// logged and doesn't stop the others. Only failing to look the events up is returned as an error.
func (d Dispatcher) Dispatch(ctx context.Context) (Result, error) {
	now := d.now()
	events, err := d.eventService.FindUpcoming(ctx, now, now.Add(d.window))
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, event := range events {
		logger := d.logger.With("event", event.ID)

		if event.User == nil || event.User.Email == "" {
			logger.WarnContext(ctx, "Skipping reminder, event has no creator email")
			result.Skipped++
			continue
		}

		if d.dryRun {
			logger.InfoContext(ctx, "Would send reminder", "name", event.EventName, "date", event.EventDate, "time", event.EventTime)
			result.Skipped++
			continue
		}

		if err := d.notifier.EventReminder(ctx, event.User.Email, event); err != nil {
			logger.ErrorContext(ctx, "Failed to send reminder", "error", err)
			result.Failed++
			continue
		}

		// the reminder went out, so marking has to happen even if the caller gave up
		if err := d.eventService.MarkReminded(context.WithoutCancel(ctx), event.ID); err != nil {
			logger.ErrorContext(ctx, "Failed to mark event as reminded", "error", err)
			result.Failed++
			continue
		}

		result.Sent++
	}

	d.logger.InfoContext(ctx, "Dispatched reminders", "sent", result.Sent, "skipped", result.Skipped, "failed", result.Failed, "dryRun", d.dryRun)
	return result, nil
}
