package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/disha/internal/aptitude"
)

var (
	errNotFound    = errors.New("not found")
	errBadRequest  = errors.New("bad request")
	errUnavailable = errors.New("persistence disabled")
)

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error to its HTTP status and a stable code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, aptitude.ErrInvalidScore):
		return http.StatusUnprocessableEntity, "invalid_score"
	case errors.Is(err, aptitude.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, aptitude.ErrOutOfRange):
		return http.StatusBadRequest, "out_of_range"
	case errors.Is(err, aptitude.ErrIncompleteData):
		return http.StatusBadRequest, "incomplete_data"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, errNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, errUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{
		Error:     msg,
		Code:      code,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
