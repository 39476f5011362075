package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes the auth layer distinguishes.
// Callers classify with errors.Is; anything upstream-specific is carried
// by *APIError.
var (
	// ErrAdminCredentialsMissing means an operation needed the admin API
	// but no admin email/password is configured. Not retryable.
	ErrAdminCredentialsMissing = errors.New("admin credentials not configured")

	// ErrPrivilegedRequired means an operation is only available on the
	// admin API and only a static API token is configured.
	ErrPrivilegedRequired = errors.New("privileged admin credentials required")

	// ErrLoginFailed means the credential exchange was rejected or could
	// not complete. Not retried beyond the rate-limit path.
	ErrLoginFailed = errors.New("admin login failed")

	// ErrLoginRateLimited means the login endpoint returned 429 and the
	// retry budget was exhausted.
	ErrLoginRateLimited = errors.New("admin login rate limited")

	// ErrAuthRequired means a request could not be issued because no
	// usable credential was available.
	ErrAuthRequired = errors.New("authentication required")
)

// APIError is a non-2xx response from the CMS, surfaced verbatim so the
// caller can decide what to do with it. The auth layer never retries these
// except for the single stale-token 401 cycle.
type APIError struct {
	Status int
	Method string
	Path   string
	Body   string

	// RetryAfter is the raw Retry-After header, if the server sent one.
	RetryAfter string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
