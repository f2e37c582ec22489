package session

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an action is invoked in a phase that
// does not allow it.
var ErrInvalidTransition = errors.New("invalid session transition")

// FetchError reports a failure to load the due cards. It is fatal to the
// session attempt.
type FetchError struct {
	DeckID string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch due cards for deck %q: %v", e.DeckID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PersistError reports a failed card or session write. It is logged and never
// returned to the caller of a Controller action.
type PersistError struct {
	Kind string // "card" or "session"
	ID   string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s %q: %v", e.Kind, e.ID, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

func invalidTransition(action string, from Phase) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, action, from)
}
