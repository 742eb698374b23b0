package transport

import (
	"errors"
	"net/http"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/admin"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/domain/validation"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/rpggio/sellerconsole/internal/simulate"
)

// Error codes shared by the HTTP and MCP adapters. Transient failures use the
// per-operation codes from simulate.
const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeLeadNotFound        = "LEAD_NOT_FOUND"
	CodeOpportunityNotFound = "OPPORTUNITY_NOT_FOUND"
	CodeAlreadyConverted    = "ALREADY_CONVERTED"
	CodeConvertFailed       = "CONVERT_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeInternal            = "INTERNAL_ERROR"
)

// errBadRequest marks malformed requests rejected by the adapter itself.
var errBadRequest = errors.New("bad request")

func badRequest(field, message string) error {
	return validation.New(errBadRequest, field, message)
}

// APIError is the adapter view of a service error.
type APIError struct {
	Status    int
	Code      string
	Message   string
	Retryable bool
	Field     string
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// MapError classifies err into a status, code and user-facing message.
func MapError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var fieldErr *validation.Error
	if errors.As(err, &fieldErr) {
		return &APIError{Status: http.StatusBadRequest, Code: CodeValidationFailed, Message: fieldErr.Message, Field: fieldErr.Field}
	}

	switch {
	case errors.Is(err, query.ErrInvalidQuery),
		errors.Is(err, lead.ErrInvalidInput),
		errors.Is(err, opportunity.ErrInvalidInput),
		errors.Is(err, admin.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, errBadRequest):
		return &APIError{Status: http.StatusBadRequest, Code: CodeValidationFailed, Message: err.Error()}
	case errors.Is(err, lead.ErrLeadNotFound):
		return &APIError{Status: http.StatusNotFound, Code: CodeLeadNotFound, Message: "Lead not found"}
	case errors.Is(err, opportunity.ErrOpportunityNotFound):
		return &APIError{Status: http.StatusNotFound, Code: CodeOpportunityNotFound, Message: "Opportunity not found"}
	case errors.Is(err, lead.ErrAlreadyConverted):
		return &APIError{Status: http.StatusConflict, Code: CodeAlreadyConverted, Message: "Lead is already converted"}
	case errors.Is(err, lead.ErrConversionFailed):
		if simulate.IsTransient(err) {
			return &APIError{
				Status:    http.StatusServiceUnavailable,
				Code:      CodeConvertFailed,
				Message:   simulate.MessageFor(simulate.OpConvertLead),
				Retryable: true,
			}
		}
		return &APIError{Status: http.StatusInternalServerError, Code: CodeConvertFailed, Message: simulate.MessageFor(simulate.OpConvertLead)}
	}

	var transient *simulate.TransientError
	if errors.As(err, &transient) {
		return &APIError{
			Status:    http.StatusServiceUnavailable,
			Code:      transient.Code,
			Message:   simulate.MessageFor(transient.Op),
			Retryable: true,
		}
	}
	if errors.Is(err, simulate.ErrTransient) {
		return &APIError{Status: http.StatusServiceUnavailable, Code: simulate.CodeFor(""), Message: simulate.MessageFor(""), Retryable: true}
	}

	return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error"}
}
