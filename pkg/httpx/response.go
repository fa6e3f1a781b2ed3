package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// FailBody is the fixed error envelope: status is "fail" for client errors
// and "error" for server errors. ConflictField names the duplicate identity
// column on registration conflicts, and is omitted otherwise.
type FailBody struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	ConflictField string `json:"conflictField,omitempty"`
}

// Fail writes the error envelope for code with the given message.
func Fail(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, FailBody{Status: failStatus(code), Message: message})
}

// FailConflict writes a 400 duplicate-identity envelope naming the colliding
// field (may be empty when unknown).
func FailConflict(w http.ResponseWriter, message, conflictField string) {
	WriteJSON(w, http.StatusBadRequest, FailBody{
		Status:        "fail",
		Message:       message,
		ConflictField: conflictField,
	})
}

func failStatus(code int) string {
	if code >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}
