package classify

import (
	"errors"
	"net/http"

	"github.com/llmaniac/beacon/internal/origins"
	"github.com/llmaniac/beacon/internal/tenants"
)

// ErrClassifyFailed indicates the capability call failed: transport
// error, timeout, or an unparseable answer. Conversation context is not
// updated when this is returned.
var ErrClassifyFailed = errors.New("classification failed")

// MapHTTPStatus maps classification errors to distinct HTTP status codes
// so callers can tell apart "not allowed", "tenant missing or broken",
// and "try again later" without parsing messages.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, origins.ErrDenied):
		return http.StatusForbidden
	case errors.Is(err, tenants.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tenants.ErrInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrClassifyFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
