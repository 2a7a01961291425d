package portal

import (
	"errors"
	"fmt"
)

// ErrAuthenticationFailed deliberately collapses bad credentials, changed
// portal markup and a slow network into one failure: the only observable
// signal is that the post-login marker never appeared within the bound.
var ErrAuthenticationFailed = errors.New("login did not reach the portal dashboard")

// NotFoundError reports a sport or scheduled event that could not be
// matched on the portal. It is fatal for the call; no portal state has
// been mutated when it is raised.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found on the portal", e.Kind, e.Name)
}
