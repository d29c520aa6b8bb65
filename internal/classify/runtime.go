package classify

import (
	"log/slog"
	"time"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code.
type Runtime struct {
	Capability Capability
	Logger     *slog.Logger

	// Timeout bounds a single capability call. A timeout surfaces as
	// ErrClassifyFailed; there is no hang and no mid-flight cancel
	// beyond the request's own lifetime.
	Timeout time.Duration
}
