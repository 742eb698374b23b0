package lead

import "errors"

var (
	// ErrLeadNotFound indicates the lead doesn't exist.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrInvalidInput indicates invalid lead input.
	ErrInvalidInput = errors.New("invalid lead input")
	// ErrAlreadyConverted indicates the lead was converted before.
	ErrAlreadyConverted = errors.New("lead already converted")
	// ErrConversionFailed wraps failures after a conversion started.
	ErrConversionFailed = errors.New("lead conversion failed")
)
