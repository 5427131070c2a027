// Package httpjson writes JSON response bodies with a uniform error shape.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// errorBody is the wire shape of every error response: {"error": <message>}.
type errorBody struct {
	Error string `json:"error"`
}

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": message} with the given status code.
func Error(w http.ResponseWriter, statusCode int, message string) {
	Write(w, statusCode, errorBody{Error: message})
}

// InternalError writes the generic 500 body. Detail belongs in the server log,
// never in the response.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "internal server error")
}
