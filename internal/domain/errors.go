// internal/domain/errors.go
package domain

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrRequestNotFound = errors.New("stk request not found")
	ErrProductNotFound = errors.New("product not found")

	// ErrPushPending rejects a second push while one is still awaiting
	// its callback. The storefront retries by cancelling on the handset
	// first, which resolves the pending request via callback.
	ErrPushPending = errors.New("a pending stk push already exists for this order")
)
