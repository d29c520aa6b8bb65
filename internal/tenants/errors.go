package tenants

import (
	"errors"
	"net/http"
)

// Domain errors for tenant configuration.
var (
	// ErrNotFound indicates no configuration exists for a container id.
	ErrNotFound = errors.New("tenant configuration not found")
	// ErrInvalid indicates stored configuration failed validation.
	ErrInvalid = errors.New("tenant configuration invalid")
)

// MapHTTPStatus maps tenant domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
