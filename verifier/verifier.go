// Package verifier re-validates external credentials against the issuing
// authority. Verification is fail-closed: any transport or protocol
// failure counts as not valid, never as valid.
package verifier

import "context"

// Verifier confirms that an external credential is still valid for a
// business unit.
type Verifier interface {
	// Verify reports whether tokenKey is still valid for userID under the
	// given business unit. requestID may be empty; implementations generate
	// a fallback correlation id. A false return with nil error means the
	// authority rejected the credential; a non-nil error means the request
	// itself was unsupportable (unknown BU, missing configuration).
	Verify(ctx context.Context, bu, tokenKey, userID, requestID string) (bool, error)
}
