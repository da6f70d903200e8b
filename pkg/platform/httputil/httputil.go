// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "github.com/mtthdn/lacuene-exp/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into a JSON error envelope. Internal
// errors omit the description so infrastructure details never leak to
// clients. Unavailable errors carry a remediation hint when one is set.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	status := dErrors.ToHTTPStatus(code)

	body := map[string]string{
		"error": string(code),
	}
	var de *dErrors.Error
	if errors.As(err, &de) && code != dErrors.CodeInternal && de.Message != "" {
		body["error_description"] = de.Message
	}
	if hint := dErrors.GetHint(err); hint != "" {
		body["hint"] = hint
	}

	WriteJSON(w, status, body)
}
