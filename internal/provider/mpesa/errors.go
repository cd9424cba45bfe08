// internal/provider/mpesa/errors.go
package mpesa

import "fmt"

// TokenError reports a failed OAuth token acquisition. It always
// propagates to the caller; there is no retry or fallback.
type TokenError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mpesa token: %s: %v", e.Message, e.Err)
	}
	return "mpesa token: " + e.Message
}

func (e *TokenError) Unwrap() error { return e.Err }

// PushError reports a failed STK push initiation. Message carries the
// provider's errorMessage when one was returned. The caller must not
// assume the request reached the provider.
type PushError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *PushError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mpesa stk push: %s: %v", e.Message, e.Err)
	}
	return "mpesa stk push: " + e.Message
}

func (e *PushError) Unwrap() error { return e.Err }
