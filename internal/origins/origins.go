// Package origins validates a request's declared origin against a
// tenant's allow-list. Matching is by hostname only: scheme and port are
// ignored. Origin headers are client-supplied and give weak assurance,
// which is adequate for analytics tagging but not for sensitive
// operations; there is no token or signature check.
package origins

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// ErrDenied indicates the request origin is absent, malformed, or not in
// the tenant's allow-list.
var ErrDenied = errors.New("origin not allowed")

// Authorize checks the Origin header value against allowed hostnames.
func Authorize(originHeader string, allowed []string) error {
	hostname, err := Hostname(originHeader)
	if err != nil {
		return err
	}

	if !slices.Contains(allowed, hostname) {
		return fmt.Errorf("%w: %s", ErrDenied, hostname)
	}

	return nil
}

// Hostname extracts the hostname from an Origin header value.
// Returns ErrDenied when the header is empty or unparseable.
func Hostname(originHeader string) (string, error) {
	if originHeader == "" {
		return "", fmt.Errorf("%w: missing origin header", ErrDenied)
	}

	parsed, err := url.Parse(originHeader)
	if err != nil || parsed.Hostname() == "" {
		return "", fmt.Errorf("%w: malformed origin %q", ErrDenied, originHeader)
	}

	return parsed.Hostname(), nil
}
