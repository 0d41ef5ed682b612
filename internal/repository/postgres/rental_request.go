package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type rentalRequestRepository struct {
	db *sql.DB
}

func NewRentalRequestRepository(db *sql.DB) repository.RentalRequestRepository {
	return &rentalRequestRepository{db: db}
}

const rentalRequestColumns = `id, tool_id, renter_id, start_date, end_date, status,
	requested_at, responded_at, cancelled_at, refunded_at, completed_at,
	payment_intent_ref, refund_ref, rental_amount_cents, deposit_amount_cents, currency`

func (r *rentalRequestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	query := `INSERT INTO rental_requests (tool_id, renter_id, start_date, end_date, status,
	          requested_at, payment_intent_ref, rental_amount_cents, deposit_amount_cents, currency)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		req.ToolID, req.RenterID, req.StartDate, req.EndDate, req.Status,
		req.RequestedAt, req.PaymentIntentRef, req.RentalAmountCents, req.DepositAmountCents, req.Currency,
	).Scan(&req.ID)
}

func (r *rentalRequestRepository) GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	query := `SELECT ` + rentalRequestColumns + ` FROM rental_requests WHERE id = $1`
	return scanRentalRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *rentalRequestRepository) Update(ctx context.Context, req *domain.RentalRequest) error {
	query := `UPDATE rental_requests SET status=$1, requested_at=$2, responded_at=$3, cancelled_at=$4,
	          refunded_at=$5, completed_at=$6, refund_ref=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		req.Status, req.RequestedAt, req.RespondedAt, req.CancelledAt,
		req.RefundedAt, req.CompletedAt, req.RefundRef, req.ID)
	return err
}

func (r *rentalRequestRepository) ListByRenter(ctx context.Context, renterID int32) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalRequestColumns + ` FROM rental_requests
	          WHERE renter_id = $1 ORDER BY requested_at DESC`
	return r.list(ctx, query, renterID)
}

func (r *rentalRequestRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.RentalRequest, error) {
	query := `SELECT r.id, r.tool_id, r.renter_id, r.start_date, r.end_date, r.status,
	          r.requested_at, r.responded_at, r.cancelled_at, r.refunded_at, r.completed_at,
	          r.payment_intent_ref, r.refund_ref, r.rental_amount_cents, r.deposit_amount_cents, r.currency
	          FROM rental_requests r
	          JOIN tools t ON r.tool_id = t.id
	          WHERE t.owner_id = $1 ORDER BY r.requested_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *rentalRequestRepository) ListApprovedStartingOn(ctx context.Context, date string) ([]domain.DueReminder, error) {
	query := `SELECT r.id, t.name, r.start_date,
	          renter.first_name || ' ' || renter.last_name, COALESCE(renter.email, ''),
	          owner.first_name || ' ' || owner.last_name, COALESCE(owner.email, '')
	          FROM rental_requests r
	          JOIN tools t ON r.tool_id = t.id
	          JOIN users renter ON r.renter_id = renter.id
	          JOIN users owner ON t.owner_id = owner.id
	          WHERE r.status = $1 AND r.start_date = $2`
	rows, err := r.db.QueryContext(ctx, query, domain.RequestStatusApproved, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []domain.DueReminder
	for rows.Next() {
		var d domain.DueReminder
		var start time.Time
		if err := rows.Scan(&d.RequestID, &d.ToolName, &start,
			&d.RenterName, &d.RenterEmail, &d.OwnerName, &d.OwnerEmail); err != nil {
			return nil, err
		}
		d.StartDate = start.Format(domain.DateLayout)
		due = append(due, d)
	}
	return due, rows.Err()
}

func (r *rentalRequestRepository) list(ctx context.Context, query string, arg int32) ([]domain.RentalRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RentalRequest
	for rows.Next() {
		req, err := scanRentalRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRentalRequest expects the driver to deliver DATE columns as
// time.Time; they are narrowed back to the wire format here so the rest
// of the code only ever sees "2006-01-02" strings.
func scanRentalRequest(row rowScanner) (*domain.RentalRequest, error) {
	req := &domain.RentalRequest{}
	var start, end time.Time
	err := row.Scan(
		&req.ID, &req.ToolID, &req.RenterID, &start, &end, &req.Status,
		&req.RequestedAt, &req.RespondedAt, &req.CancelledAt, &req.RefundedAt, &req.CompletedAt,
		&req.PaymentIntentRef, &req.RefundRef, &req.RentalAmountCents, &req.DepositAmountCents, &req.Currency,
	)
	if err != nil {
		return nil, err
	}
	req.StartDate = start.Format(domain.DateLayout)
	req.EndDate = end.Format(domain.DateLayout)
	return req, nil
}
