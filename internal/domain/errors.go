package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFoundOrUnauthorized covers both a missing rental request and a
	// renter acting on somebody else's request. The two cases are reported
	// identically so a caller cannot probe for other users' request IDs.
	ErrNotFoundOrUnauthorized = errors.New("rental request not found")

	// ErrNotAuthorized is returned for owner operations when the acting user
	// does not own the tool on the request.
	ErrNotAuthorized = errors.New("not authorized to manage this rental request")

	// ErrInvalidStateTransition is returned when a status or date
	// precondition is unmet. The request is left untouched.
	ErrInvalidStateTransition = errors.New("rental request does not allow this action in its current state")

	ErrToolNotFound  = errors.New("tool not found")
	ErrEmptyCheckout = errors.New("cart has no payable line items")
)

// GatewayError wraps a failed payment gateway call. No refund fields are
// written for the failed attempt; retrying is safe because refund
// idempotency keys are deterministic.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
