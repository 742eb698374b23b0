package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Envelope wraps every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
	Field     string `json:"field,omitempty"`
}

// WriteData writes a success envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// WriteError writes a failure envelope for err.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := MapError(err)
	writeJSON(w, apiErr.Status, Envelope{Error: &ErrorBody{
		Message:   apiErr.Message,
		Code:      apiErr.Code,
		Retryable: apiErr.Retryable,
		Field:     apiErr.Field,
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSON reads a single JSON object into dst. Unknown fields are rejected.
func decodeJSON(r *http.Request, dst any) error {
	err := decodeOptionalJSON(r, dst)
	if errors.Is(err, errEmptyBody) {
		return badRequest("body", "request body is required")
	}
	return err
}

var errEmptyBody = errors.New("empty body")

// decodeOptionalJSON is decodeJSON for endpoints where a missing body means
// defaults. It returns errEmptyBody, leaving dst untouched, when the body has
// no content, whatever the Content-Length or transfer encoding.
func decodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return badRequest("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}
