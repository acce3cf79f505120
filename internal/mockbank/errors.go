package mockbank

import "fmt"

// ErrAuthentication is returned when a request cannot be authenticated. The
// reason is serialized as "message" because that's the field client
// applications surface to the user.
type ErrAuthentication struct {
	Reason string `json:"message"`
}

func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("could not authenticate the request: %s", e.Reason)
}

// ErrBadRequest is returned when a request is malformed.
type ErrBadRequest struct {
	Reason  string   `json:"reason"`
	Details []string `json:"details,omitempty"`
}

func (e *ErrBadRequest) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("bad request: %s", e.Reason)
	}
	msg := fmt.Sprintf("bad request: %s:", e.Reason)
	for i, detail := range e.Details {
		msg = fmt.Sprintf("%s\n  %d. %s", msg, i, detail)
	}
	return msg
}

// ErrNotFound is returned when the requested entity does not exist.
type ErrNotFound struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Type, e.ID)
}

// ErrConflict is returned when an entity with the same identity already
// exists.
type ErrConflict struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("a %s with the ID %q already exists", e.Type, e.ID)
}
