package repository

import (
	"context"

	"toolshare-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ToolRepository interface {
	Create(ctx context.Context, tool *domain.Tool) error
	GetByID(ctx context.Context, id int32) (*domain.Tool, error)
	GetOwnerID(ctx context.Context, toolID int32) (int32, error)
	Update(ctx context.Context, tool *domain.Tool) error
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Tool, error)
	Search(ctx context.Context, query, category, metro string) ([]domain.Tool, error)
	ListAvailability(ctx context.Context, toolID int32) ([]domain.ToolAvailability, error)
}

type RentalRequestRepository interface {
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error)
	Update(ctx context.Context, req *domain.RentalRequest) error
	ListByRenter(ctx context.Context, renterID int32) ([]domain.RentalRequest, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.RentalRequest, error)

	// ListApprovedStartingOn returns every approved request whose rental
	// starts on the given yyyy-mm-dd date, joined with the renter's and
	// owner's contact details for reminder delivery.
	ListApprovedStartingOn(ctx context.Context, date string) ([]domain.DueReminder, error)
}

type ReminderLogRepository interface {
	// Exists reports whether a reminder of the given kind was already sent
	// for (request, date).
	Exists(ctx context.Context, requestID int32, kind domain.ReminderKind, date string) (bool, error)

	// InsertIfAbsent records a sent reminder. The (request, kind, date)
	// tuple is a natural key; inserting a duplicate is a no-op and returns
	// false rather than an error.
	InsertIfAbsent(ctx context.Context, requestID int32, kind domain.ReminderKind, date string) (bool, error)
}
