// Package flow is the client-side screen-sequencing state machine: an
// explicit transition table with guards, instead of a pile of booleans
// that hides impossible screen combinations behind conditional rendering.
package flow

import "fmt"

type State string

const (
	StateUpload           State = "upload"
	StateEdit             State = "edit"
	StateLogin            State = "login"
	StateLoadingSport     State = "loadingSport"
	StateSelectSport      State = "selectSport"
	StateLoadingEvent     State = "loadingEvent"
	StateSelectEvent      State = "selectEvent"
	StateSubmitting       State = "submitting"
	StateSubmissionResult State = "submissionResult"
)

type Event string

const (
	// EventScanned fires when the uploaded image has been turned into an
	// editable result set.
	EventScanned Event = "scanned"
	// EventEdited fires when the user accepts the edited results.
	EventEdited Event = "edited"

	EventLoginSubmitted Event = "loginSubmitted"
	EventSportsLoaded   Event = "sportsLoaded"
	EventSportsFailed   Event = "sportsFailed"
	EventSportChosen    Event = "sportChosen"
	EventEventsLoaded   Event = "eventsLoaded"
	EventEventsFailed   Event = "eventsFailed"
	EventEventChosen    Event = "eventChosen"
	EventSubmitFinished Event = "submitFinished"
	EventRetry          Event = "retry"
	EventReset          Event = "reset"
)

// transitions is the full table; an (state, event) pair absent here is
// rejected. Reset is accepted everywhere except the in-flight loading and
// submitting states.
var transitions = map[State]map[Event]State{
	StateUpload: {
		EventScanned: StateEdit,
		EventReset:   StateUpload,
	},
	StateEdit: {
		EventEdited: StateLogin,
		EventReset:  StateUpload,
	},
	StateLogin: {
		EventLoginSubmitted: StateLoadingSport,
		EventReset:          StateUpload,
	},
	StateLoadingSport: {
		EventSportsLoaded: StateSelectSport,
		EventSportsFailed: StateLogin,
	},
	StateSelectSport: {
		EventSportChosen: StateLoadingEvent,
		EventReset:       StateUpload,
	},
	StateLoadingEvent: {
		EventEventsLoaded: StateSelectEvent,
		EventEventsFailed: StateSelectSport,
	},
	StateSelectEvent: {
		EventEventChosen: StateSubmitting,
		EventReset:       StateUpload,
	},
	StateSubmitting: {
		EventSubmitFinished: StateSubmissionResult,
	},
	StateSubmissionResult: {
		EventRetry: StateSelectEvent,
		EventReset: StateUpload,
	},
}

// TransitionError reports a fired event whose transition or guard was
// rejected; the machine state is unchanged.
type TransitionError struct {
	From   State
	Event  Event
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot fire %q in state %q: %s", e.Event, e.From, e.Reason)
}

// Session holds the ephemeral per-user workflow state: credentials, the
// chosen entities, and the current screen. Everything lives in memory for
// one user session and is wiped by reset.
type Session struct {
	state State

	Username    string
	Password    string
	Sport       string
	EventDate   string
	ResultCount int

	// LastError carries the message the error-display variant of the
	// current screen shows; cleared on every successful transition.
	LastError string
}

func NewSession() *Session {
	return &Session{state: StateUpload}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) hasCredentials() bool {
	return s.Username != "" && s.Password != ""
}

// Fire applies one event. Guards reject transitions whose preconditions
// are unmet, with one exception taken from the portal workflow: choosing a
// sport without stored credentials routes back to the login screen instead
// of erroring, because that is where the user has to go anyway.
func (s *Session) Fire(ev Event) error {
	next, ok := transitions[s.state][ev]
	if !ok {
		return &TransitionError{From: s.state, Event: ev, Reason: "event not accepted in this state"}
	}

	switch ev {
	case EventReset:
		*s = Session{state: StateUpload}
		return nil

	case EventLoginSubmitted:
		if !s.hasCredentials() {
			return &TransitionError{From: s.state, Event: ev, Reason: "credentials required"}
		}

	case EventSportChosen:
		if s.Sport == "" {
			return &TransitionError{From: s.state, Event: ev, Reason: "no sport chosen"}
		}
		if !s.hasCredentials() {
			s.state = StateLogin
			s.LastError = "session expired, log in again"
			return nil
		}

	case EventEventChosen:
		if s.EventDate == "" {
			return &TransitionError{From: s.state, Event: ev, Reason: "no event chosen"}
		}
		if !s.hasCredentials() {
			return &TransitionError{From: s.state, Event: ev, Reason: "credentials required"}
		}
		if s.ResultCount == 0 {
			return &TransitionError{From: s.state, Event: ev, Reason: "no results to submit"}
		}
	}

	s.state = next
	s.LastError = ""
	return nil
}

// Fail records an error message and fires the matching failure event, so
// the caller lands on the error-display variant of the right screen.
func (s *Session) Fail(ev Event, message string) error {
	if err := s.Fire(ev); err != nil {
		return err
	}
	s.LastError = message
	return nil
}
