// Package storefront contains the JSON HTTP handlers for the customer
// facing API: catalog browsing, cart, checkout and demo authentication.
package storefront

import (
	"encoding/json"
	"net/http"

	"github.com/rowanhale/vitrine/internal/domain"
	"github.com/rowanhale/vitrine/internal/middleware"
)

// SessionTokenHeader carries the browsing-session token. The server mints
// one on the first cart mutation and echoes it back in the response.
const SessionTokenHeader = "X-Session-Token"

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError translates a domain error into the JSON error envelope.
// Validation errors carry per-field messages so the form can render them
// inline without blocking continued typing.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if fields := domain.GetValidationFields(err); fields != nil {
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "Validation failed",
			Code:   domain.EINVALID,
			Fields: fields,
		})
		return
	}

	code := domain.ErrorCode(err)
	status := statusFromCode(code)
	if status >= http.StatusInternalServerError {
		middleware.GetLogger(r.Context()).Error("request failed",
			"status", status,
			"error", err.Error(),
		)
	}

	respondJSON(w, status, ErrorResponse{
		Error: domain.ErrorMessage(err),
		Code:  code,
	})
}

func statusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// sessionToken reads the caller's session token, which may be empty for a
// fresh browser.
func sessionToken(r *http.Request) string {
	return r.Header.Get(SessionTokenHeader)
}

func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return domain.Invalid("request.decode", "invalid JSON body")
	}
	return nil
}
