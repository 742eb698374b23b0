package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/domain/validation"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/rpggio/sellerconsole/internal/simulate"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	transientUpdate := &simulate.TransientError{Op: simulate.OpUpdateLead, Code: simulate.CodeFor(simulate.OpUpdateLead)}

	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"field error", validation.New(lead.ErrInvalidInput, "email", "email is invalid"), http.StatusBadRequest, CodeValidationFailed, false},
		{"bad query", fmt.Errorf("%w: unknown status", query.ErrInvalidQuery), http.StatusBadRequest, CodeValidationFailed, false},
		{"bad opportunity", opportunity.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed, false},
		{"lead missing", fmt.Errorf("getting lead: %w", lead.ErrLeadNotFound), http.StatusNotFound, CodeLeadNotFound, false},
		{"opportunity missing", opportunity.ErrOpportunityNotFound, http.StatusNotFound, CodeOpportunityNotFound, false},
		{"already converted", lead.ErrAlreadyConverted, http.StatusConflict, CodeAlreadyConverted, false},
		{"transient", fmt.Errorf("updating lead: %w", transientUpdate), http.StatusServiceUnavailable, "UPDATE_FAILED", true},
		{"conversion transient", fmt.Errorf("%w: creating opportunity: %w", lead.ErrConversionFailed, transientUpdate), http.StatusServiceUnavailable, CodeConvertFailed, true},
		{"conversion broken", fmt.Errorf("%w: %w", lead.ErrConversionFailed, errors.New("disk")), http.StatusInternalServerError, CodeConvertFailed, false},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError, CodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			require.Equal(t, tt.status, got.Status)
			require.Equal(t, tt.code, got.Code)
			require.Equal(t, tt.retryable, got.Retryable)
			require.NotEmpty(t, got.Message)
		})
	}
}

func TestMapError_FieldKept(t *testing.T) {
	got := MapError(fmt.Errorf("wrapped: %w", validation.New(lead.ErrInvalidInput, "score", "score must be between 1 and 100")))
	require.Equal(t, "score", got.Field)
	require.Equal(t, "score must be between 1 and 100", got.Message)
}

func TestMapError_TransientMessage(t *testing.T) {
	got := MapError(&simulate.TransientError{Op: simulate.OpListLeads, Code: "SERVER_ERROR"})
	require.Equal(t, simulate.MessageFor(simulate.OpListLeads), got.Message)
}
