package domain

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
	RequestStatusCompleted RequestStatus = "COMPLETED"
)

// RenterMayCancel reports whether a renter-initiated cancellation is
// allowed from this status. The start-date check is separate.
func (s RequestStatus) RenterMayCancel() bool {
	return s == RequestStatusPending || s == RequestStatusApproved
}

// DepositReturnable reports whether the owner may record a tool return and
// refund the deposit from this status.
func (s RequestStatus) DepositReturnable() bool {
	return s == RequestStatusApproved || s == RequestStatusCompleted
}

// RentalRequest is one reservation of a tool by a renter for a date range,
// carrying payment and refund state. Requests are never deleted; the
// nullable timestamps form the audit trail.
type RentalRequest struct {
	ID                 int32         `json:"id"`
	ToolID             int32         `json:"tool_id"`
	RenterID           int32         `json:"renter_id"`
	StartDate          string        `json:"start_date"`
	EndDate            string        `json:"end_date"`
	Status             RequestStatus `json:"status"`
	RequestedAt        time.Time     `json:"requested_at"`
	RespondedAt        *time.Time    `json:"responded_at,omitempty"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	RefundedAt         *time.Time    `json:"refunded_at,omitempty"`
	CompletedAt        *time.Time    `json:"completed_at,omitempty"`
	PaymentIntentRef   *string       `json:"payment_intent_reference,omitempty"`
	RefundRef          *string       `json:"refund_reference,omitempty"`
	RentalAmountCents  int64         `json:"rental_amount_cents"`
	DepositAmountCents int64         `json:"deposit_amount_cents"`
	Currency           string        `json:"currency"`
}

// TotalPayableCents is the rental charge plus the refundable deposit.
func (r *RentalRequest) TotalPayableCents() int64 {
	return r.RentalAmountCents + r.DepositAmountCents
}
