package service

import (
	"fmt"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
)

// Refund kinds. Each kind maps to its own idempotency key per request, so
// a full cancellation refund and a deposit return on the same request can
// never collapse into one gateway operation.
const (
	refundKindFull    = "full-refund"
	refundKindDeposit = "deposit-refund"
)

// refundKeyNamespace is fixed for the lifetime of the system; changing it
// would break retry safety for in-flight refunds.
var refundKeyNamespace = uuid.MustParse("88d7dbe3-5b06-4f12-a1a4-02d31dfe1a3e")

// RefundIdempotencyKey derives the gateway idempotency key for one logical
// refund. The derivation is deterministic: retrying the same (request,
// kind) always produces the same key, while distinct requests or kinds
// never share one.
func RefundIdempotencyKey(requestID int32, kind string) string {
	name := fmt.Sprintf("rental-request/%d/%s", requestID, kind)
	return uuid.NewSHA1(refundKeyNamespace, []byte(name)).String()
}

// refundMetadata tags the gateway refund for later reconciliation.
func refundMetadata(req *domain.RentalRequest, kind string) map[string]string {
	return map[string]string{
		"rental_request_id": fmt.Sprintf("%d", req.ID),
		"refund_kind":       kind,
	}
}
