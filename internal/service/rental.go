package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

type rentalService struct {
	rentalRepo repository.RentalRequestRepository
	toolRepo   repository.ToolRepository
	userRepo   repository.UserRepository
	gateway    PaymentGateway
	emailSvc   EmailService

	// now is swappable in tests; every date precondition compares against
	// the calendar day it returns.
	now func() time.Time
}

func NewRentalService(
	rentalRepo repository.RentalRequestRepository,
	toolRepo repository.ToolRepository,
	userRepo repository.UserRepository,
	gateway PaymentGateway,
	emailSvc EmailService,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		toolRepo:   toolRepo,
		userRepo:   userRepo,
		gateway:    gateway,
		emailSvc:   emailSvc,
		now:        time.Now,
	}
}

// getForRenter loads a request and verifies the actor is its renter.
// Absence and renter mismatch are indistinguishable to the caller.
func (s *rentalService) getForRenter(ctx context.Context, renterID, requestID int32) (*domain.RentalRequest, error) {
	req, err := s.rentalRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFoundOrUnauthorized
		}
		return nil, err
	}
	if req.RenterID != renterID {
		return nil, domain.ErrNotFoundOrUnauthorized
	}
	return req, nil
}

// getForOwner loads a request and verifies the actor owns the tool on it.
func (s *rentalService) getForOwner(ctx context.Context, ownerID, requestID int32) (*domain.RentalRequest, error) {
	req, err := s.rentalRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFoundOrUnauthorized
		}
		return nil, err
	}
	toolOwner, err := s.toolRepo.GetOwnerID(ctx, req.ToolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFoundOrUnauthorized
		}
		return nil, err
	}
	if toolOwner != ownerID {
		return nil, domain.ErrNotAuthorized
	}
	return req, nil
}

// RequestCancellation moves a pending or approved request to CANCELLED on
// behalf of its renter. Requests whose start date has already passed
// cannot be cancelled retroactively.
func (s *rentalService) RequestCancellation(ctx context.Context, renterID, requestID int32) (*domain.RentalRequest, error) {
	req, err := s.getForRenter(ctx, renterID, requestID)
	if err != nil {
		return nil, err
	}

	if !req.Status.RenterMayCancel() {
		return nil, domain.ErrInvalidStateTransition
	}
	start, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return nil, err
	}
	today := s.today()
	if start.Before(today) {
		return nil, domain.ErrInvalidStateTransition
	}

	now := s.now()
	req.Status = domain.RequestStatusCancelled
	req.CancelledAt = &now
	if err := s.rentalRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("Rental cancellation requested", "request_id", req.ID, "renter_id", renterID)

	s.notifyOwnerOfCancellation(ctx, req)
	return req, nil
}

// ApproveCancellation is the owner's confirmation of a renter-initiated
// cancellation. It refunds the full amount (rental plus deposit) through
// the gateway at most once: the locally recorded refund reference and the
// deterministic idempotency key are two independent double-refund guards.
// responded_at is only set once the refund side is settled, so a gateway
// failure leaves the approval retryable.
func (s *rentalService) ApproveCancellation(ctx context.Context, ownerID, requestID int32) (*CancellationOutcome, error) {
	req, err := s.getForOwner(ctx, ownerID, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status != domain.RequestStatusCancelled || req.RespondedAt != nil {
		return nil, domain.ErrInvalidStateTransition
	}

	outcome := &CancellationOutcome{Request: req}
	now := s.now()

	switch {
	case req.RefundRef != nil:
		// A refund from an earlier, partially failed approval attempt is
		// already on file; finishing the approval must not re-refund.
		req.RespondedAt = &now

	case req.PaymentIntentRef == nil:
		req.RespondedAt = &now
		outcome.Warning = "no payment on file; nothing to refund"

	default:
		total := req.TotalPayableCents()
		key := RefundIdempotencyKey(req.ID, refundKindFull)
		logger.ExternalServiceCall("payment-gateway", "refund", "request_id", req.ID, "amount_cents", total)
		res, err := s.gateway.Refund(ctx, *req.PaymentIntentRef, total, refundMetadata(req, refundKindFull), key)
		logger.ExternalServiceResult("payment-gateway", "refund", err, "request_id", req.ID)
		if err != nil {
			// responded_at stays unset: the transition is not complete and
			// the owner can safely retry.
			return nil, err
		}
		req.RefundRef = &res.RefundID
		req.RefundedAt = &now
		req.RespondedAt = &now
		outcome.RefundIssued = true
		outcome.RefundCents = total
	}

	if err := s.rentalRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("Cancellation approved", "request_id", req.ID, "refund_issued", outcome.RefundIssued)

	if outcome.RefundIssued {
		s.notifyRenterOfApproval(ctx, req, outcome.RefundCents)
	}
	return outcome, nil
}

// ReturnAndRefundDeposit records the physical return of the tool and
// refunds the deposit (never the rental charge). The return itself is
// recorded even when the refund fails, because the tool is back regardless
// of what the gateway did; the failure is surfaced in the outcome.
func (s *rentalService) ReturnAndRefundDeposit(ctx context.Context, ownerID, requestID int32) (*DepositReturnOutcome, error) {
	req, err := s.getForOwner(ctx, ownerID, requestID)
	if err != nil {
		return nil, err
	}

	if !req.Status.DepositReturnable() {
		return nil, domain.ErrInvalidStateTransition
	}

	outcome := &DepositReturnOutcome{Request: req}
	now := s.now()

	markCompleted := func() {
		if req.CompletedAt == nil {
			req.CompletedAt = &now
		}
		req.Status = domain.RequestStatusCompleted
	}

	switch {
	case req.RefundedAt != nil:
		markCompleted()
		outcome.AlreadyRefunded = true

	case req.DepositAmountCents == 0:
		markCompleted()

	case req.PaymentIntentRef == nil:
		markCompleted()
		outcome.Warning = "no payment on file; deposit needs a manual refund"

	default:
		key := RefundIdempotencyKey(req.ID, refundKindDeposit)
		logger.ExternalServiceCall("payment-gateway", "refund", "request_id", req.ID, "amount_cents", req.DepositAmountCents)
		res, err := s.gateway.Refund(ctx, *req.PaymentIntentRef, req.DepositAmountCents, refundMetadata(req, refundKindDeposit), key)
		logger.ExternalServiceResult("payment-gateway", "refund", err, "request_id", req.ID)
		if err != nil {
			markCompleted()
			outcome.RefundErr = err
		} else {
			req.RefundRef = &res.RefundID
			req.RefundedAt = &now
			markCompleted()
			outcome.RefundIssued = true
		}
	}

	if err := s.rentalRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("Tool return recorded", "request_id", req.ID,
		"deposit_refunded", outcome.RefundIssued, "already_refunded", outcome.AlreadyRefunded)

	if outcome.RefundIssued {
		s.notifyRenterOfDepositReturn(ctx, req)
	}
	return outcome, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, requestID int32) (*domain.RentalRequest, error) {
	req, err := s.rentalRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFoundOrUnauthorized
		}
		return nil, err
	}
	if req.RenterID == userID {
		return req, nil
	}
	toolOwner, err := s.toolRepo.GetOwnerID(ctx, req.ToolID)
	if err != nil || toolOwner != userID {
		return nil, domain.ErrNotFoundOrUnauthorized
	}
	return req, nil
}

func (s *rentalService) ListRentals(ctx context.Context, renterID int32) ([]domain.RentalRequest, error) {
	return s.rentalRepo.ListByRenter(ctx, renterID)
}

func (s *rentalService) ListLendings(ctx context.Context, ownerID int32) ([]domain.RentalRequest, error) {
	return s.rentalRepo.ListByOwner(ctx, ownerID)
}

// today truncates the clock to the calendar day.
func (s *rentalService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Best-effort notifications. A failed or unaddressable email never fails
// the state transition that triggered it.

func (s *rentalService) notifyOwnerOfCancellation(ctx context.Context, req *domain.RentalRequest) {
	tool, err := s.toolRepo.GetByID(ctx, req.ToolID)
	if err != nil {
		return
	}
	owner, err := s.userRepo.GetByID(ctx, tool.OwnerID)
	if err != nil || owner.Email == "" {
		return
	}
	renterName := "The renter"
	if renter, err := s.userRepo.GetByID(ctx, req.RenterID); err == nil {
		renterName = renter.FullName()
	}
	_ = s.emailSvc.SendCancellationRequested(ctx, owner.Email, renterName, tool.Name)
}

func (s *rentalService) notifyRenterOfApproval(ctx context.Context, req *domain.RentalRequest, refundCents int64) {
	renter, err := s.userRepo.GetByID(ctx, req.RenterID)
	if err != nil || renter.Email == "" {
		return
	}
	toolName := "your rental"
	if tool, err := s.toolRepo.GetByID(ctx, req.ToolID); err == nil {
		toolName = tool.Name
	}
	_ = s.emailSvc.SendCancellationApproved(ctx, renter.Email, toolName, refundCents)
}

func (s *rentalService) notifyRenterOfDepositReturn(ctx context.Context, req *domain.RentalRequest) {
	renter, err := s.userRepo.GetByID(ctx, req.RenterID)
	if err != nil || renter.Email == "" {
		return
	}
	toolName := "your rental"
	if tool, err := s.toolRepo.GetByID(ctx, req.ToolID); err == nil {
		toolName = tool.Name
	}
	_ = s.emailSvc.SendDepositReturned(ctx, renter.Email, toolName, req.DepositAmountCents)
}
