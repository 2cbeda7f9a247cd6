package lib

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a bare JSON document with the given status. Resource
// payloads go out unwrapped; envelopes are reserved for errors and
// acknowledgements.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
