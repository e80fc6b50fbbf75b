package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/apperrors"
)

// Error collects field-level validation failures keyed by field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	slices.Sort(keys)

	msgs := make([]string, 0, len(keys))
	for _, field := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// Is reports every validation Error as apperrors.ErrValidation.
func (e *Error) Is(target error) bool { return target == apperrors.ErrValidation }

// fieldError builds an Error holding a single field failure.
func fieldError(field, msg string) *Error {
	return &Error{Fields: map[string]string{field: msg}}
}
