package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// FieldRule is one named validation check evaluated against a request field.
// Each mutating operation declares its rules as an explicit list instead of
// threading ad hoc checks through the handler body.
type FieldRule struct {
	Field   string
	Valid   func(string) bool
	Message string
}

// FieldError is one failed rule, returned to the client in a 400 body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateFields evaluates every rule up front and returns the full error
// collection; it never stops at the first failure.
func ValidateFields(values map[string]string, rules []FieldRule) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		if !r.Valid(values[r.Field]) {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
		}
	}
	return errs
}

// NotEmpty reports whether the trimmed value is non-empty.
func NotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

func writeFieldErrors(w http.ResponseWriter, errs []FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string][]FieldError{"errors": errs})
}
