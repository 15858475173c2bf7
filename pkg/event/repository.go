package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(ctx context.Context, event *model.Event) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %v", err)
	}
	return nil
}

func (r repository) findById(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var event model.Event
	err := r.db.
		WithContext(ctx).
		Where("id = ?", id).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("event not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event: %v", err)
	}

	return &event, nil
}

// search matches query case-insensitively against the name and the location of events. An empty query matches
// every event.
func (r repository) search(ctx context.Context, query string) ([]model.Event, error) {
	db := r.db.WithContext(ctx)
	if query != "" {
		pattern := "%" + escapeLike(query) + "%"
		db = db.Where("event_name ILIKE ? OR event_location ILIKE ?", pattern, pattern)
	}

	var events []model.Event
	err := db.
		Order("event_date asc").
		Order("event_time asc").
		Order("created_at asc").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %v", err)
	}
	return events, nil
}

// findUnreminded returns the events dated from and including fromDate until and including toDate which no reminder
// was sent for. The creator is preloaded.
func (r repository) findUnreminded(ctx context.Context, fromDate string, toDate string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		WithContext(ctx).
		Preload("User").
		Where("reminded_at IS NULL").
		Where("event_date BETWEEN ? AND ?", fromDate, toDate).
		Order("event_date asc").
		Order("event_time asc").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events to remind of: %v", err)
	}
	return events, nil
}

func (r repository) markReminded(ctx context.Context, id uuid.UUID, at time.Time) error {
	ctx = context.WithoutCancel(ctx)

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Update("reminded_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to mark event %q as reminded: %v", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return errdef.NewNotFound("event not found")
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
