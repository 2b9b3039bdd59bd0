package utils

import (
	"encoding/json"
	"net/http"

	"go-pizzeria/apperr"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes a JSON error body with the status code derived from the
// error's kind. Unclassified errors render as 500.
func Error(w http.ResponseWriter, err error) {
	JSON(w, apperr.KindOf(err).Status(), map[string]string{"error": err.Error()})
}
