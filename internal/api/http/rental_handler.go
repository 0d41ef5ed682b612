package http

import (
	"net/http"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

// RentalHandler serves the rental lifecycle for both sides: renters
// manage their rentals, owners manage their lendings.
type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	rentals, err := h.rentalSvc.ListRentals(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ListLendings(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	lendings, err := h.rentalSvc.ListLendings(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lendings)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}

	rental, err := h.rentalSvc.GetRental(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// RequestCancellation lets the renter cancel a pending or approved
// rental before its start date.
func (h *RentalHandler) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}

	req, err := h.rentalSvc.RequestCancellation(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type cancellationResponse struct {
	Request      *domain.RentalRequest `json:"request"`
	RefundIssued bool                  `json:"refund_issued"`
	RefundCents  int64                 `json:"refund_cents,omitempty"`
	Warning      string                `json:"warning,omitempty"`
}

// ApproveCancellation lets the owner acknowledge a cancellation and
// triggers the full refund of rental amount plus deposit.
func (h *RentalHandler) ApproveCancellation(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}

	outcome, err := h.rentalSvc.ApproveCancellation(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cancellationResponse{
		Request:      outcome.Request,
		RefundIssued: outcome.RefundIssued,
		RefundCents:  outcome.RefundCents,
		Warning:      outcome.Warning,
	})
}

type depositReturnResponse struct {
	Request         *domain.RentalRequest `json:"request"`
	RefundIssued    bool                  `json:"refund_issued"`
	AlreadyRefunded bool                  `json:"already_refunded"`
	Warning         string                `json:"warning,omitempty"`
	RefundError     string                `json:"refund_error,omitempty"`
}

// ReturnDeposit records the tool's return and refunds the deposit. A
// gateway failure still completes the rental; the error rides along in
// the response so the owner knows to retry the refund.
func (h *RentalHandler) ReturnDeposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}

	outcome, err := h.rentalSvc.ReturnAndRefundDeposit(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := depositReturnResponse{
		Request:         outcome.Request,
		RefundIssued:    outcome.RefundIssued,
		AlreadyRefunded: outcome.AlreadyRefunded,
		Warning:         outcome.Warning,
	}
	if outcome.RefundErr != nil {
		resp.RefundError = "deposit refund failed; retry from the lendings page"
	}
	writeJSON(w, http.StatusOK, resp)
}
