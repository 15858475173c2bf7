package docs

// swagger:parameters findEvent eventCalendar findCountdown streamCountdown
type IdParam struct {
	// in: path
	// required: true
	ID string `json:"id"`
}

// swagger:parameters searchEvents geocodeSuggestions
type QueryParam struct {
	// Free text to search for
	// in: query
	// required: false
	Q string `json:"q"`
}

// swagger:response
type Error struct {
	// The error message
	//in: body
	Message string
}

// Server-sent events, one per line prefixed with event, id and data
// swagger:response
type Stream struct {
	//in: body
	Body string
}

// iCalendar file
// swagger:response
type Calendar struct {
	//in: body
	Body string
}

// Image bytes of the avatar
// swagger:response
type Avatar struct {
	//in: body
	Body []byte
}
