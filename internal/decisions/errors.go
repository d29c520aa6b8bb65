package decisions

import (
	"errors"
	"net/http"
)

// Domain errors for decision operations.
var (
	ErrNotFound  = errors.New("decision not found")
	ErrDuplicate = errors.New("decision already exists")
)

// MapHTTPStatus maps decision domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
