package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"error": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// DecodeJSON parses the JSON body into v. Unknown fields are tolerated;
// the API contract only names required ones.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return http.ErrBodyNotAllowed
	}
	return json.NewDecoder(r.Body).Decode(v)
}
