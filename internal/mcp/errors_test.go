package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/simulate"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))

	got := MapError(fmt.Errorf("get: %w", lead.ErrLeadNotFound))
	require.Equal(t, "LEAD_NOT_FOUND", got.Code)
	require.False(t, got.Retryable)
	require.NotEmpty(t, got.RecoveryHint)

	got = MapError(&simulate.TransientError{Op: simulate.OpDeleteOpportunity, Code: simulate.CodeFor(simulate.OpDeleteOpportunity)})
	require.Equal(t, "DELETE_OPPORTUNITY_FAILED", got.Code)
	require.True(t, got.Retryable)
}

func TestMapError_ConversionFailure(t *testing.T) {
	transient := &simulate.TransientError{Op: simulate.OpUpdateLead, Code: simulate.CodeFor(simulate.OpUpdateLead)}
	got := MapError(fmt.Errorf("%w: marking lead converted: %w", lead.ErrConversionFailed, transient))
	require.Equal(t, "CONVERT_FAILED", got.Code)
	require.True(t, got.Retryable)

	got = MapError(fmt.Errorf("%w: %w", lead.ErrConversionFailed, errors.New("disk full")))
	require.Equal(t, "CONVERT_FAILED", got.Code)
	require.False(t, got.Retryable)
	require.Empty(t, got.RecoveryHint)
}

func TestErrorsDoc_ConvertFailedRetryability(t *testing.T) {
	var content string
	for _, doc := range docResources {
		if doc.URI == "seller://docs/errors" {
			content = doc.Content
		}
	}
	require.Contains(t, content, "| CONVERT_FAILED | only when transient |")
}

func TestFormatPayload_Truncates(t *testing.T) {
	long := make([]byte, maxLoggedPayload*2)
	for i := range long {
		long[i] = 'a'
	}
	out := formatPayload(string(long))
	require.Len(t, out, maxLoggedPayload+3)
	require.Equal(t, "<nil>", formatPayload(nil))
}
