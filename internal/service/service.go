package service

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName, phone, zipCode string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

type ToolService interface {
	AddTool(ctx context.Context, tool *domain.Tool) error
	GetTool(ctx context.Context, id int32) (*domain.Tool, []domain.ToolAvailability, error)
	ListMyTools(ctx context.Context, ownerID int32) ([]domain.Tool, error)
	SearchTools(ctx context.Context, query, category, metro string) ([]domain.Tool, error)
}

// CancellationOutcome reports an approved cancellation. Warning carries a
// non-fatal condition ("no payment on file") that needs manual follow-up.
type CancellationOutcome struct {
	Request      *domain.RentalRequest
	RefundIssued bool
	RefundCents  int64
	Warning      string
}

// DepositReturnOutcome reports a tool return. RefundErr carries a gateway
// failure that did not stop the return itself from being recorded.
type DepositReturnOutcome struct {
	Request         *domain.RentalRequest
	RefundIssued    bool
	AlreadyRefunded bool
	Warning         string
	RefundErr       error
}

type RentalService interface {
	RequestCancellation(ctx context.Context, renterID, requestID int32) (*domain.RentalRequest, error)
	ApproveCancellation(ctx context.Context, ownerID, requestID int32) (*CancellationOutcome, error)
	ReturnAndRefundDeposit(ctx context.Context, ownerID, requestID int32) (*DepositReturnOutcome, error)
	GetRental(ctx context.Context, userID, requestID int32) (*domain.RentalRequest, error)
	ListRentals(ctx context.Context, renterID int32) ([]domain.RentalRequest, error)
	ListLendings(ctx context.Context, ownerID int32) ([]domain.RentalRequest, error)
}

type ReminderService interface {
	// RunDueReminders sends start-of-rental reminders for approved rentals
	// beginning the day after today and returns the number actually
	// dispatched. Per-recipient failures are logged and retried next run.
	RunDueReminders(ctx context.Context, today time.Time) (int, error)
}

// CheckoutResult carries the gateway handoff plus the pending requests
// created for the cart's dated lines.
type CheckoutResult struct {
	PaymentRef  string
	CheckoutURL string
	Requests    []*domain.RentalRequest
}

type CartService interface {
	AddLine(ctx context.Context, cart *domain.Cart, toolID int32, date string) error
	AddLineByToolOnly(ctx context.Context, cart *domain.Cart, toolID int32, quantity int64) error
	RemoveOne(cart *domain.Cart, key domain.LineKey)
	Checkout(ctx context.Context, renterID int32, cart *domain.Cart) (*CheckoutResult, error)
}

type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error

	SendCancellationRequested(ctx context.Context, ownerEmail, renterName, toolName string) error
	SendCancellationApproved(ctx context.Context, renterEmail, toolName string, refundCents int64) error
	SendDepositReturned(ctx context.Context, renterEmail, toolName string, depositCents int64) error
	SendStartReminder(ctx context.Context, email, name, toolName, startDate, role string) error
}

// RefundResult is the gateway's acknowledgement of an issued refund.
type RefundResult struct {
	RefundID string
	Status   string
}

// CheckoutSession is a gateway-hosted payment page for a set of line items.
type CheckoutSession struct {
	ID         string
	URL        string
	PaymentRef string
}

// PaymentGateway is the external payment processor. Refund is idempotent
// on the gateway side via the caller-supplied idempotency key.
type PaymentGateway interface {
	Refund(ctx context.Context, paymentRef string, amountCents int64, metadata map[string]string, idempotencyKey string) (*RefundResult, error)
	CreateCheckoutSession(ctx context.Context, customerEmail string, items []domain.LineItem, metadata map[string]string) (*CheckoutSession, error)
}
