package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toolshare-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) Create(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}
func (m *MockToolRepo) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}
func (m *MockToolRepo) GetOwnerID(ctx context.Context, toolID int32) (int32, error) {
	args := m.Called(ctx, toolID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockToolRepo) Update(ctx context.Context, tool *domain.Tool) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}
func (m *MockToolRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Tool, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Tool), args.Error(1)
}
func (m *MockToolRepo) Search(ctx context.Context, query, category, metro string) ([]domain.Tool, error) {
	args := m.Called(ctx, query, category, metro)
	return args.Get(0).([]domain.Tool), args.Error(1)
}
func (m *MockToolRepo) ListAvailability(ctx context.Context, toolID int32) ([]domain.ToolAvailability, error) {
	args := m.Called(ctx, toolID)
	return args.Get(0).([]domain.ToolAvailability), args.Error(1)
}

// MockRentalRequestRepo
type MockRentalRequestRepo struct {
	mock.Mock
}

func (m *MockRentalRequestRepo) Create(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentalRequestRepo) GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) Update(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRentalRequestRepo) ListByRenter(ctx context.Context, renterID int32) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalRequestRepo) ListApprovedStartingOn(ctx context.Context, date string) ([]domain.DueReminder, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.DueReminder), args.Error(1)
}

// MockReminderLogRepo
type MockReminderLogRepo struct {
	mock.Mock
}

func (m *MockReminderLogRepo) Exists(ctx context.Context, requestID int32, kind domain.ReminderKind, date string) (bool, error) {
	args := m.Called(ctx, requestID, kind, date)
	return args.Bool(0), args.Error(1)
}
func (m *MockReminderLogRepo) InsertIfAbsent(ctx context.Context, requestID int32, kind domain.ReminderKind, date string) (bool, error) {
	args := m.Called(ctx, requestID, kind, date)
	return args.Bool(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	args := m.Called(ctx, toEmail, toName, subject, body)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationRequested(ctx context.Context, ownerEmail, renterName, toolName string) error {
	args := m.Called(ctx, ownerEmail, renterName, toolName)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationApproved(ctx context.Context, renterEmail, toolName string, refundCents int64) error {
	args := m.Called(ctx, renterEmail, toolName, refundCents)
	return args.Error(0)
}
func (m *MockEmailService) SendDepositReturned(ctx context.Context, renterEmail, toolName string, depositCents int64) error {
	args := m.Called(ctx, renterEmail, toolName, depositCents)
	return args.Error(0)
}
func (m *MockEmailService) SendStartReminder(ctx context.Context, email, name, toolName, startDate, role string) error {
	args := m.Called(ctx, email, name, toolName, startDate, role)
	return args.Error(0)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Refund(ctx context.Context, paymentRef string, amountCents int64, metadata map[string]string, idempotencyKey string) (*RefundResult, error) {
	args := m.Called(ctx, paymentRef, amountCents, metadata, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RefundResult), args.Error(1)
}
func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, customerEmail string, items []domain.LineItem, metadata map[string]string) (*CheckoutSession, error) {
	args := m.Called(ctx, customerEmail, items, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutSession), args.Error(1)
}

// fixedClock pins service clocks to a known instant.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
