package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed request. The request ID travels
// in the X-Request-ID header, not here.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status. v is encoded
// before the header goes out, so a value that cannot be encoded becomes a 500
// instead of a truncated success.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: "response could not be encoded", Kind: "internal"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// WriteError writes a standardised JSON error response. kind may be empty.
func WriteError(w http.ResponseWriter, status int, msg, kind string) {
	WriteJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}
