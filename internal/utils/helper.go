package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive database id from a path segment.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// FormValue returns nil when key was not sent in the parsed form at all,
// so an explicitly empty field can be told apart from a missing one.
func FormValue(r *http.Request, key string) *string {
	if r.MultipartForm != nil {
		if v, ok := r.MultipartForm.Value[key]; ok && len(v) > 0 {
			return &v[0]
		}
		return nil
	}
	if v, ok := r.PostForm[key]; ok && len(v) > 0 {
		return &v[0]
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
