package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event domain object defining a scheduled event
// swagger:model
type Event struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	EventName     string     `gorm:"not null" json:"eventName"`
	EventDate     string     `gorm:"not null;index" json:"eventDate"`
	EventTime     string     `gorm:"not null" json:"eventTime"`
	EventLocation string     `gorm:"not null" json:"eventLocation"`
	UserID        uint       `gorm:"index" json:"userId"`
	User          *User      `json:"-"`
	RemindedAt    *time.Time `json:"remindedAt,omitempty"`
}

// BeforeCreate assigns the id when the caller didn't.
func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// MissingFields returns the json names of the mandatory fields which are blank.
func (e Event) MissingFields() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"eventName", e.EventName},
		{"eventDate", e.EventDate},
		{"eventTime", e.EventTime},
		{"eventLocation", e.EventLocation},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Start returns the moment the event starts, reading the date and time in loc.
func (e Event) Start(loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation(DateLayout+" "+TimeLayout, e.EventDate+" "+e.EventTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or time for event %q: %v", e.ID, err)
	}
	return start, nil
}

// Coordinate is a resolved geographic position. It's never persisted.
type Coordinate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}
