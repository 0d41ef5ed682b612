package http

import (
	"net/http"

	"github.com/google/uuid"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

const cartCookieName = "cart_session"

// CartHandler serves the session cart. The cart rides on an anonymous
// session cookie so browsing works before login; checkout requires auth.
type CartHandler struct {
	cartSvc service.CartService
	carts   *service.CartStore
}

func NewCartHandler(cartSvc service.CartService, carts *service.CartStore) *CartHandler {
	return &CartHandler{cartSvc: cartSvc, carts: carts}
}

// sessionCart finds or creates the caller's cart, minting the session
// cookie on first contact.
func (h *CartHandler) sessionCart(w http.ResponseWriter, r *http.Request) (string, *domain.Cart) {
	cookie, err := r.Cookie(cartCookieName)
	if err != nil || cookie.Value == "" {
		id := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     cartCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return id, h.carts.GetOrCreate(id)
	}
	return cookie.Value, h.carts.GetOrCreate(cookie.Value)
}

type addLineRequest struct {
	ToolID   int32  `json:"tool_id"`
	Date     string `json:"date,omitempty"`
	Quantity int64  `json:"quantity,omitempty"`
}

func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	_, cart := h.sessionCart(w, r)

	var err error
	if req.Date != "" {
		err = h.cartSvc.AddLine(r.Context(), cart, req.ToolID, req.Date)
	} else {
		err = h.cartSvc.AddLineByToolOnly(r.Context(), cart, req.ToolID, req.Quantity)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, cart)
}

type removeLineRequest struct {
	ToolID int32  `json:"tool_id"`
	Date   string `json:"date,omitempty"`
}

func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	var req removeLineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	_, cart := h.sessionCart(w, r)

	h.cartSvc.RemoveOne(cart, domain.LineKey{ToolID: req.ToolID, Date: req.Date})
	h.writeCart(w, cart)
}

func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	_, cart := h.sessionCart(w, r)
	h.writeCart(w, cart)
}

type cartResponse struct {
	Lines  []domain.CartLine `json:"lines"`
	Totals domain.CartTotals `json:"totals"`
}

func (h *CartHandler) writeCart(w http.ResponseWriter, cart *domain.Cart) {
	writeJSON(w, http.StatusOK, cartResponse{Lines: cart.Lines(), Totals: cart.Totals()})
}

type checkoutResponse struct {
	CheckoutURL string                  `json:"checkout_url"`
	PaymentRef  string                  `json:"payment_ref"`
	Requests    []*domain.RentalRequest `json:"requests"`
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}
	sessionID, cart := h.sessionCart(w, r)

	result, err := h.cartSvc.Checkout(r.Context(), userID, cart)
	if err != nil {
		writeError(w, err)
		return
	}

	// The session cart is spent once the gateway session exists.
	h.carts.Drop(sessionID)

	writeJSON(w, http.StatusOK, checkoutResponse{
		CheckoutURL: result.CheckoutURL,
		PaymentRef:  result.PaymentRef,
		Requests:    result.Requests,
	})
}
