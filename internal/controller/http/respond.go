package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/schooltab/timetable/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondDomainError maps the error taxonomy onto HTTP statuses. Unknown
// errors become an opaque 500; their detail stays in the logs.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case model.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case model.IsConflict(err):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrNoSubjectAssignment):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrSlotNotFound):
		respondError(w, http.StatusNotFound, "this booking could not be cancelled")
	case errors.Is(err, model.ErrNoIdentity):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
