package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"toolshare-backend/internal/domain"
)

var rentalRequestTestColumns = []string{
	"id", "tool_id", "renter_id", "start_date", "end_date", "status",
	"requested_at", "responded_at", "cancelled_at", "refunded_at", "completed_at",
	"payment_intent_ref", "refund_ref", "rental_amount_cents", "deposit_amount_cents", "currency",
}

func TestRentalRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRequestRepository(db)
	ctx := context.Background()

	req := &domain.RentalRequest{
		ToolID: 5, RenterID: 42,
		StartDate: "2026-03-15", EndDate: "2026-03-15",
		Status:            domain.RequestStatusPending,
		RequestedAt:       time.Now(),
		RentalAmountCents: 2000, DepositAmountCents: 5000, Currency: "usd",
	}

	mock.ExpectQuery("INSERT INTO rental_requests").
		WithArgs(req.ToolID, req.RenterID, req.StartDate, req.EndDate, req.Status,
			req.RequestedAt, nil, req.RentalAmountCents, req.DepositAmountCents, req.Currency).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

	err = repo.Create(ctx, req)
	assert.NoError(t, err)
	assert.Equal(t, int32(21), req.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRequestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRequestRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(rentalRequestTestColumns).
			AddRow(21, 5, 42, start, start, "CANCELLED",
				now, nil, now, nil, nil, "pi_123", nil, 2000, 5000, "usd")
		mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE id").
			WithArgs(int32(21)).
			WillReturnRows(rows)

		req, err := repo.GetByID(ctx, 21)
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestStatusCancelled, req.Status)
		assert.Equal(t, "2026-03-15", req.StartDate)
		assert.Equal(t, "2026-03-15", req.EndDate)
		assert.Equal(t, "pi_123", *req.PaymentIntentRef)
		assert.Nil(t, req.RefundRef)
		assert.NotNil(t, req.CancelledAt)
	})

	// The driver hands DATE columns back as midnight timestamps. The
	// scanned dates must stay parseable by the day-granularity layout.
	t.Run("DateColumnsNarrowToDayFormat", func(t *testing.T) {
		start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(rentalRequestTestColumns).
			AddRow(22, 5, 42, start, start.AddDate(0, 0, 2), "APPROVED",
				time.Now(), nil, nil, nil, nil, nil, nil, 2000, 5000, "usd")
		mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE id").
			WithArgs(int32(22)).
			WillReturnRows(rows)

		req, err := repo.GetByID(ctx, 22)
		assert.NoError(t, err)
		assert.Equal(t, "2026-03-15", req.StartDate)
		assert.Equal(t, "2026-03-17", req.EndDate)
		_, err = time.Parse(domain.DateLayout, req.StartDate)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rental_requests WHERE id").
			WithArgs(int32(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestRentalRequestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRequestRepository(db)
	ctx := context.Background()

	now := time.Now()
	ref := "re_123"
	req := &domain.RentalRequest{
		ID: 21, Status: domain.RequestStatusCancelled,
		RequestedAt: now, RespondedAt: &now, CancelledAt: &now, RefundedAt: &now,
		RefundRef: &ref,
	}

	mock.ExpectExec("UPDATE rental_requests SET").
		WithArgs(req.Status, req.RequestedAt, req.RespondedAt, req.CancelledAt,
			req.RefundedAt, nil, req.RefundRef, req.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(ctx, req))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRequestRepository_ListApprovedStartingOn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRequestRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "start_date", "renter_name", "renter_email", "owner_name", "owner_email"}).
		AddRow(7, "Tile Saw", start, "Rita Renter", "rita@test.com", "Olive Owner", "olive@test.com").
		AddRow(8, "Ladder", start, "Max Mason", "", "Olive Owner", "olive@test.com")
	mock.ExpectQuery("SELECT (.+) FROM rental_requests r").
		WithArgs(domain.RequestStatusApproved, "2026-03-11").
		WillReturnRows(rows)

	due, err := repo.ListApprovedStartingOn(ctx, "2026-03-11")
	assert.NoError(t, err)
	assert.Len(t, due, 2)
	assert.Equal(t, int32(7), due[0].RequestID)
	assert.Equal(t, "2026-03-11", due[0].StartDate)
	assert.Equal(t, "rita@test.com", due[0].RenterEmail)
	assert.Equal(t, "", due[1].RenterEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRequestRepository_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRequestRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(rentalRequestTestColumns).
		AddRow(21, 5, 42, start, start, "APPROVED",
			time.Now(), nil, nil, nil, nil, nil, nil, 2000, 5000, "usd")
	mock.ExpectQuery("SELECT (.+) FROM rental_requests r").
		WithArgs(int32(9)).
		WillReturnRows(rows)

	reqs, err := repo.ListByOwner(ctx, 9)
	assert.NoError(t, err)
	assert.Len(t, reqs, 1)
	assert.Equal(t, domain.RequestStatusApproved, reqs[0].Status)
	assert.Equal(t, "2026-03-15", reqs[0].StartDate)
}
