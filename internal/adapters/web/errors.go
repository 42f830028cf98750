package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"stockmaster/internal/core"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var errorCodes = []struct {
	target error
	code   string
	status int
}{
	{core.ErrEmptySeries, "EMPTY_SERIES", http.StatusUnprocessableEntity},
	{core.ErrEmptyPortfolio, "EMPTY_PORTFOLIO", http.StatusUnprocessableEntity},
	{core.ErrInvalidSeries, "INVALID_SERIES", http.StatusUnprocessableEntity},
	{core.ErrDuplicateWarehouse, "DUPLICATE_WAREHOUSE", http.StatusUnprocessableEntity},
	{core.ErrPeriodNotFound, "PERIOD_NOT_FOUND", http.StatusNotFound},
	{core.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
	{core.ErrValidation, "VALIDATION_FAILED", http.StatusBadRequest},
	{core.ErrConflict, "CONFLICT", http.StatusConflict},
	{core.ErrPreferenceNotSet, "NOT_FOUND", http.StatusNotFound},
}

// writeServiceError maps a service error onto the JSON error envelope.
// Unknown errors are logged and reported as 500 without their message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.target) {
			writeError(w, r, err.Error(), e.code, e.status)
			return
		}
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
}
