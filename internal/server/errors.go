package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/desertthunder/glass/internal/services"
	"github.com/desertthunder/glass/internal/shared"
)

// errorBody is the JSON shape of every locally generated error.
type errorBody struct {
	Error          string `json:"error"`
	Detail         string `json:"detail,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   string `json:"upstream_body,omitempty"`
}

// statusFor maps a sentinel error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrProviderDenied),
		errors.Is(err, shared.ErrMissingExchangeMaterial),
		errors.Is(err, shared.ErrTokenExchangeFailed),
		errors.Is(err, shared.ErrMissingQuery):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrUpstreamTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a JSON error with the status from [statusFor].
//
// The message is the sentinel's text; wrapped detail that may echo upstream data is only
// included for a rejected code exchange, where it is the provider's own error response.
func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: publicMessage(err)}

	if xe, ok := services.AsExchangeError(err); ok {
		body.UpstreamStatus = xe.Status
		body.UpstreamBody = xe.Body
	}

	writeJSON(w, statusFor(err), body)
}

// writeErrorDetail writes err with an extra detail string.
func writeErrorDetail(w http.ResponseWriter, err error, detail string) {
	writeJSON(w, statusFor(err), errorBody{Error: publicMessage(err), Detail: detail})
}

func publicMessage(err error) string {
	for _, sentinel := range []error{
		shared.ErrProviderDenied,
		shared.ErrMissingExchangeMaterial,
		shared.ErrTokenExchangeFailed,
		shared.ErrNotAuthenticated,
		shared.ErrMissingQuery,
		shared.ErrUpstreamTransport,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal server error"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
