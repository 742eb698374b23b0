package opportunity

import "errors"

var (
	// ErrOpportunityNotFound indicates the opportunity doesn't exist.
	ErrOpportunityNotFound = errors.New("opportunity not found")
	// ErrInvalidInput indicates invalid opportunity input.
	ErrInvalidInput = errors.New("invalid opportunity input")
)
