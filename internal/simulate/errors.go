package simulate

import (
	"errors"
	"fmt"
)

// ErrTransient marks an injected failure. Callers may retry.
var ErrTransient = errors.New("simulated transient failure")

// TransientError is returned when the failure policy rejects a call.
type TransientError struct {
	Op   string
	Code string
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, MessageFor(e.Op))
}

func (e *TransientError) Unwrap() error {
	return ErrTransient
}

// IsTransient reports whether err carries an injected failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// CodeOf returns the operation code of an injected failure, or "".
func CodeOf(err error) string {
	var te *TransientError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
