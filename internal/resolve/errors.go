package resolve

import (
	"errors"
	"fmt"
)

// TransportError marks a failure that left the session connection unusable:
// dial, login, or a socket-level timeout mid-command. It aborts the whole
// resolution run, unlike selection or search failures, which are contained
// to their mailbox or attempt.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err wraps a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
