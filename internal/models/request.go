package models

// SportsRequest asks for the categories visible to one portal account.
type SportsRequest struct {
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
	CorrelationID string `json:"requestId"`
}

// EventsRequest asks for one sport's schedule.
type EventsRequest struct {
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
	Sport         string `json:"sport" validate:"required"`
	CorrelationID string `json:"requestId"`
}

// SubmitRequest carries the full result set for one scheduled event. The
// event is identified by the date string exactly as the schedule scrape
// returned it.
type SubmitRequest struct {
	Username      string       `json:"username" validate:"required"`
	Password      string       `json:"password" validate:"required"`
	Sport         string       `json:"sport" validate:"required"`
	EventDate     string       `json:"eventDate" validate:"required"`
	Data          []RaceResult `json:"data" validate:"dive"`
	CorrelationID string       `json:"requestId"`
}

// FailureResponse is the uniform error payload of every automation
// endpoint. Success payloads are stage-specific.
type FailureResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SubmitResponse reports a completed submission walk. Success means the
// walk finished without a fatal error, not that every lane was confirmed;
// Warnings counts lanes whose confirmation card never appeared.
type SubmitResponse struct {
	Success  bool `json:"success"`
	Warnings int  `json:"warnings,omitempty"`
}

func (r *SportsRequest) Validate() error { return validate.Struct(r) }
func (r *EventsRequest) Validate() error { return validate.Struct(r) }
func (r *SubmitRequest) Validate() error { return validate.Struct(r) }
