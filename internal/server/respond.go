package server

import (
	"encoding/json"
	"net/http"

	"github.com/platewise/menupress/pkg/errors"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes onto HTTP statuses: validation failures are
// client errors, template incompatibility is a conflict, missing external
// tooling is 501, everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsValidation(err):
		status = http.StatusUnprocessableEntity
	case errors.IsCompatibility(err):
		status = http.StatusConflict
	case errors.Is(err, errors.ErrCodeUnsupported):
		status = http.StatusNotImplemented
	}

	var body errorBody
	body.Error.Code = string(errors.GetCode(err))
	body.Error.Message = errors.UserMessage(err)
	body.Error.Field = errors.GetField(err)
	writeJSON(w, status, body)
}
