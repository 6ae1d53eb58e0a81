package sdk

import (
	"fmt"
	"net/http"
)

// InvalidCredentialError is returned when the identity provider rejects a
// sign-in attempt (wrong password, unknown account). The provider's message
// is carried verbatim for display.
type InvalidCredentialError struct {
	Message string
}

func (e *InvalidCredentialError) Error() string {
	if e.Message == "" {
		return "invalid credentials"
	}
	return e.Message
}

// PopupClosedError is returned when the user aborts a browser-based sign-in
// flow before it completes. It is reported, never treated as fatal.
type PopupClosedError struct {
	Reason string
}

func (e *PopupClosedError) Error() string {
	if e.Reason == "" {
		return "sign-in flow aborted"
	}
	return fmt.Sprintf("sign-in flow aborted: %s", e.Reason)
}

// InvalidEmailError is returned by operations that validate an email address
// locally before contacting the identity provider.
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address: %q", e.Email)
}

// ProviderError wraps any other identity-provider rejection.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NetworkError wraps transport-level failures where no response was
// received. The SDK does not distinguish timeout from connection-refused
// from DNS failure; that distinction, if needed, belongs to the caller.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthorizationError is returned when the backend answers 401 or 403. The
// gateway performs its recovery side effects before returning it; callers
// still receive the error so their own handling fires.
type AuthorizationError struct {
	StatusCode int
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization failed: %s", http.StatusText(e.StatusCode))
}

// ValidationError reports malformed input caught client-side before any
// request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// APIError is a non-2xx business response from the backend (report limit
// reached, duplicate record, and so on). 401/403 never surface as APIError;
// they become AuthorizationError in the gateway.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}
