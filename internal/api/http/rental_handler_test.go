package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) RequestCancellation(ctx context.Context, renterID, requestID int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, renterID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) ApproveCancellation(ctx context.Context, ownerID, requestID int32) (*service.CancellationOutcome, error) {
	args := m.Called(ctx, ownerID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CancellationOutcome), args.Error(1)
}
func (m *MockRentalService) ReturnAndRefundDeposit(ctx context.Context, ownerID, requestID int32) (*service.DepositReturnOutcome, error) {
	args := m.Called(ctx, ownerID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DepositReturnOutcome), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, userID, requestID int32) (*domain.RentalRequest, error) {
	args := m.Called(ctx, userID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, renterID int32) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRentalService) ListLendings(ctx context.Context, ownerID int32) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}

func testRouter(rentalSvc service.RentalService) (*httptest.Server, string) {
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", 60)
	token, _ := tokens.GenerateAccessToken(42, "rita@test.com")

	router := NewRouter(Handlers{
		Rental: NewRentalHandler(rentalSvc),
		Auth:   NewAuthHandler(nil),
		User:   NewUserHandler(nil),
		Tool:   NewToolHandler(nil),
		Cart:   NewCartHandler(nil, service.NewCartStore()),
	}, NewAuthMiddleware(tokens))

	return httptest.NewServer(router), token
}

func doPost(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, nil)
	assert.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	return resp
}

func TestRentalHandler_RequestCancellation(t *testing.T) {
	rentalSvc := new(MockRentalService)
	srv, token := testRouter(rentalSvc)
	defer srv.Close()

	t.Run("Success", func(t *testing.T) {
		rentalSvc.On("RequestCancellation", mock.Anything, int32(42), int32(7)).
			Return(&domain.RentalRequest{ID: 7, Status: domain.RequestStatusCancelled}, nil).Once()

		resp := doPost(t, srv.URL+"/api/rentals/7/cancel", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got domain.RentalRequest
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, domain.RequestStatusCancelled, got.Status)
	})

	t.Run("MissingToken", func(t *testing.T) {
		resp := doPost(t, srv.URL+"/api/rentals/7/cancel", "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("UnknownRequestIs404", func(t *testing.T) {
		rentalSvc.On("RequestCancellation", mock.Anything, int32(42), int32(404)).
			Return(nil, domain.ErrNotFoundOrUnauthorized).Once()

		resp := doPost(t, srv.URL+"/api/rentals/404/cancel", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("BadStateIs409", func(t *testing.T) {
		rentalSvc.On("RequestCancellation", mock.Anything, int32(42), int32(8)).
			Return(nil, domain.ErrInvalidStateTransition).Once()

		resp := doPost(t, srv.URL+"/api/rentals/8/cancel", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestRentalHandler_ApproveCancellation(t *testing.T) {
	rentalSvc := new(MockRentalService)
	srv, token := testRouter(rentalSvc)
	defer srv.Close()

	t.Run("RefundIssued", func(t *testing.T) {
		rentalSvc.On("ApproveCancellation", mock.Anything, int32(42), int32(21)).
			Return(&service.CancellationOutcome{
				Request:      &domain.RentalRequest{ID: 21, Status: domain.RequestStatusCancelled},
				RefundIssued: true,
				RefundCents:  7000,
			}, nil).Once()

		resp := doPost(t, srv.URL+"/api/lendings/21/approve-cancellation", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got cancellationResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.True(t, got.RefundIssued)
		assert.Equal(t, int64(7000), got.RefundCents)
	})

	t.Run("ForeignToolIs403", func(t *testing.T) {
		rentalSvc.On("ApproveCancellation", mock.Anything, int32(42), int32(22)).
			Return(nil, domain.ErrNotAuthorized).Once()

		resp := doPost(t, srv.URL+"/api/lendings/22/approve-cancellation", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("GatewayDownIs502", func(t *testing.T) {
		rentalSvc.On("ApproveCancellation", mock.Anything, int32(42), int32(23)).
			Return(nil, &domain.GatewayError{Op: "refund", Err: errors.New("503")}).Once()

		resp := doPost(t, srv.URL+"/api/lendings/23/approve-cancellation", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestRentalHandler_ReturnDeposit(t *testing.T) {
	rentalSvc := new(MockRentalService)
	srv, token := testRouter(rentalSvc)
	defer srv.Close()

	t.Run("RefundFailureSurfacesInBody", func(t *testing.T) {
		rentalSvc.On("ReturnAndRefundDeposit", mock.Anything, int32(42), int32(31)).
			Return(&service.DepositReturnOutcome{
				Request:   &domain.RentalRequest{ID: 31, Status: domain.RequestStatusCompleted},
				RefundErr: errors.New("timeout"),
			}, nil).Once()

		resp := doPost(t, srv.URL+"/api/lendings/31/return-deposit", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got depositReturnResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, domain.RequestStatusCompleted, got.Request.Status)
		assert.NotEmpty(t, got.RefundError)
	})
}
