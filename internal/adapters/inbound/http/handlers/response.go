package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
)

const (
	contentTypeHeader = "Content-Type"
	applicationJSON   = "application/json"

	codeNotFound      = "NOT_FOUND"
	codeConflict      = "CONFLICT"
	codeInternalError = "INTERNAL_ERROR"
	codeInvalidID     = "INVALID_ID"
	codeInvalidJSON   = "INVALID_JSON"
	codeInvalidState  = "INVALID_STATE"
	codeInvalidParams = "INVALID_PARAMS"
	codeValidation    = "VALIDATION_ERROR"

	msgDeviceNotFound     = "device not found"
	msgInvalidDeviceID    = "invalid device ID"
	msgInvalidRequestBody = "invalid request body"
)

// ErrorResponse is the wire shape of every error reply. Details carries
// one entry per violation when a mutation is rejected in bulk.
type ErrorResponse struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   []string  `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set(contentTypeHeader, applicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string, details ...string) {
	writeJSONResponse(w, status, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// writeDomainError maps domain errors onto HTTP statuses. A batch of
// state-guard violations becomes one 409 carrying every message.
func writeDomainError(w http.ResponseWriter, err error) {
	var violations *model.ValidationErrors
	if errors.As(err, &violations) {
		writeErrorResponse(w, http.StatusConflict, codeConflict, violations.Error(), violations.Messages()...)

		return
	}

	switch {
	case errors.Is(err, model.ErrDeviceNotFound):
		writeErrorResponse(w, http.StatusNotFound, codeNotFound, msgDeviceNotFound)
	case errors.Is(err, model.ErrInvalidState):
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidState, err.Error())
	case errors.Is(err, model.ErrDuplicateDevice):
		writeErrorResponse(w, http.StatusConflict, codeConflict, err.Error())
	default:
		writeErrorResponse(w, http.StatusInternalServerError, codeInternalError, err.Error())
	}
}
