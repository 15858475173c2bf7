// Package calendar exports events as iCalendar documents.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/hotspot-events/hotspot/pkg/model"
)

const (
	ContentType = "text/calendar; charset=utf-8"
	// Duration is the length assumed for every event since only the start is known.
	Duration = time.Hour

	productName = "Hotspot"
)

// Export renders event as a calendar holding a single VEVENT. Date and time of the event are read in loc and
// written in UTC. The output only depends on the event so exporting the same event twice yields the same bytes.
func Export(event model.Event, loc *time.Location) ([]byte, error) {
	start, err := event.Start(loc)
	if err != nil {
		return nil, err
	}

	stamp := start
	if !event.CreatedAt.IsZero() {
		stamp = event.CreatedAt
	}

	cal := ics.NewCalendarFor(productName)
	cal.SetMethod(ics.MethodPublish)

	vevent := cal.AddEvent(uid(event))
	vevent.SetDtStampTime(stamp.UTC())
	vevent.SetSummary(event.EventName)
	vevent.SetStartAt(start.UTC())
	vevent.SetEndAt(start.Add(Duration).UTC())
	vevent.SetLocation(event.EventLocation)

	return []byte(cal.Serialize()), nil
}

// FileName returns the attachment name of the exported event.
func FileName(event model.Event) string {
	name := slug.Make(event.EventName)
	if name == "" {
		name = "event"
	}
	return name + ".ics"
}

// uid falls back to an id derived from the fields for events which aren't stored.
func uid(event model.Event) string {
	id := event.ID
	if id == uuid.Nil {
		fields := strings.Join([]string{event.EventName, event.EventDate, event.EventTime, event.EventLocation}, "\n")
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fields))
	}
	return fmt.Sprintf("%s@hotspot.events", id)
}
