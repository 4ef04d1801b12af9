// internal/pkg/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for the storefront client. Callers classify failures
// with errors.Is and surface the wrapped human-readable message verbatim.
var (
	// ErrNetwork indicates the request could not be completed at all.
	ErrNetwork = errors.New("network error")

	// ErrAuthenticationFailed indicates the portal rejected the credentials.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAuthenticationRequired indicates the action needs a session that does not exist.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrEmptyCart indicates checkout was attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidItem indicates a cart item is missing required identity fields.
	ErrInvalidItem = errors.New("invalid cart item")

	// ErrServer indicates a non-2xx status or a malformed response body.
	ErrServer = errors.New("server error")
)

// Wrap attaches a human-readable message to a sentinel kind
func Wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
