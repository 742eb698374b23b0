package mcp

import (
	"fmt"
	"net/http"

	"github.com/rpggio/sellerconsole/internal/transport"
)

// ToolError is the body of a failed tool call. Codes match the HTTP API.
type ToolError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Retryable    bool   `json:"retryable"`
	Field        string `json:"field,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to tool errors.
func MapError(err error) *ToolError {
	if err == nil {
		return nil
	}
	apiErr := transport.MapError(err)
	out := &ToolError{
		Code:      apiErr.Code,
		Message:   apiErr.Message,
		Retryable: apiErr.Retryable,
		Field:     apiErr.Field,
	}
	switch {
	case apiErr.Retryable:
		out.RecoveryHint = "Transient failure; retry the same call"
	case apiErr.Code == transport.CodeLeadNotFound:
		out.RecoveryHint = "Check the id with list_leads"
	case apiErr.Code == transport.CodeOpportunityNotFound:
		out.RecoveryHint = "Check the id with list_opportunities"
	case apiErr.Code == transport.CodeAlreadyConverted:
		out.RecoveryHint = "Find the opportunity with list_opportunities"
	case apiErr.Status == http.StatusBadRequest:
		out.RecoveryHint = "Fix the input and call again"
	}
	return out
}
