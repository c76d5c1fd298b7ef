package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Error categories, each mapped to one HTTP status. Handlers classify
// failures at the boundary before any store mutation happens.
type errorKind int

const (
	kindAuthentication errorKind = iota // missing/invalid/expired credential
	kindPermission                      // authenticated but not allowed
	kindValidation                      // malformed or policy-violating input
	kindNotFound                        // referenced resource does not exist
)

type apiError struct {
	kind   errorKind
	msg    string
	fields map[string][]string
}

func (e *apiError) Error() string { return e.msg }

func authenticationError(msg string) *apiError {
	return &apiError{kind: kindAuthentication, msg: msg}
}

func permissionError(msg string) *apiError {
	return &apiError{kind: kindPermission, msg: msg}
}

func validationError(msg string) *apiError {
	return &apiError{kind: kindValidation, msg: msg}
}

// fieldError is a validation failure attributed to a single input field.
func fieldError(field, msg string) *apiError {
	return &apiError{
		kind:   kindValidation,
		msg:    msg,
		fields: map[string][]string{field: {msg}},
	}
}

func notFoundError(msg string) *apiError {
	return &apiError{kind: kindNotFound, msg: msg}
}

func statusFor(kind errorKind) int {
	switch kind {
	case kindAuthentication:
		return http.StatusUnauthorized
	case kindPermission:
		return http.StatusForbidden
	case kindValidation:
		return http.StatusBadRequest
	case kindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondFailure writes err as a JSON error response. Classified errors get
// their mapped status; anything else is the deliberate catch-all boundary and
// surfaces as an internal error with its message.
func respondFailure(w http.ResponseWriter, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		if len(apiErr.fields) > 0 {
			respondJSON(w, statusFor(apiErr.kind), apiErr.fields)
			return
		}
		respondJSON(w, statusFor(apiErr.kind), map[string]any{"error": apiErr.msg})
		return
	}

	log.Error().Err(err).Msg("request failed")
	respondJSON(w, http.StatusInternalServerError, map[string]any{
		"error": "an unexpected error occurred: " + err.Error(),
	})
}
