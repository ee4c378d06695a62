package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotHydrated    = errors.New("state has not been loaded yet")
	ErrServiceStopped = errors.New("service is stopped")
	ErrUnknownCounter = errors.New("unknown counter")
)

// IntentError reports a rejected user intent.
type IntentError struct {
	Op        string
	CounterID int
	Err       error
}

func (e *IntentError) Error() string {
	if e == nil {
		return ""
	}
	if e.CounterID > 0 {
		return fmt.Sprintf("%s counter %d: %v", e.Op, e.CounterID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IntentError) Unwrap() error { return e.Err }

func rejectIntent(op string, id int, err error) error {
	if err == nil {
		return nil
	}
	return &IntentError{Op: op, CounterID: id, Err: err}
}
