package event

import "github.com/hotspot-events/hotspot/pkg/model"

// swagger:parameters createEvent
type _ struct {
	// in: body
	// required: true
	Body CreateEventRequest
}

// swagger:parameters updateDraft
type _ struct {
	// in: body
	// required: true
	Body UpdateDraftRequest
}

// swagger:parameters selectSuggestion
type _ struct {
	// Position of the suggestion in the draft
	// in: path
	// required: true
	Index uint `json:"index"`
}

// swagger:response Created
type _ struct {
	//in: body
	_ Created
}

// swagger:response Detail
type _ struct {
	//in: body
	_ Detail
}

// swagger:response Draft
type _ struct {
	//in: body
	_ Draft
}

// swagger:response []Event
type _ struct {
	//in: body
	_ []model.Event
}
