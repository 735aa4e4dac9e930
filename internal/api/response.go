package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/alexiusacademia/beamcheck/internal/beam"
	"github.com/alexiusacademia/beamcheck/internal/errors"
)

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrors(w http.ResponseWriter, status int, fields map[string]string) {
	writeJSON(w, status, ErrorResponse{Valid: false, Errors: fields})
}

// writeFailure reports a validation error field by field.
func writeFailure(w http.ResponseWriter, err error) {
	var verr *beam.ValidationError
	if stderrors.As(err, &verr) {
		writeErrors(w, http.StatusBadRequest, verr.Fields)
		return
	}
	writeErrors(w, http.StatusBadRequest, map[string]string{"input": err.Error()})
}

// errorField maps a solver failure to the envelope key it is reported
// under. ok is false for unexpected failures.
func errorField(err error) (string, bool) {
	switch errors.GetCode(err) {
	case errors.ErrCodeLayout:
		return "placement", true
	case errors.ErrCodeGeometry:
		return "geometry", true
	case errors.ErrCodeNoEquilibrium:
		return "flexure", true
	case errors.ErrCodeInvalidInput:
		return "input", true
	}
	return "", false
}
