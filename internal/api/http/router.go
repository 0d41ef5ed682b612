package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth   *AuthHandler
	User   *UserHandler
	Tool   *ToolHandler
	Rental *RentalHandler
	Cart   *CartHandler
}

// NewRouter wires all routes. Everything under /api except auth, tool
// search, and the cart requires a valid access token.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/tools", h.Tool.SearchTools).Methods(http.MethodGet)
	api.HandleFunc("/tools/{id:[0-9]+}", h.Tool.GetTool).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.Cart.ViewCart).Methods(http.MethodGet)
	api.HandleFunc("/cart/lines", h.Cart.AddLine).Methods(http.MethodPost)
	api.HandleFunc("/cart/lines/remove", h.Cart.RemoveLine).Methods(http.MethodPost)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Middleware)
	authed.HandleFunc("/profile", h.User.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/profile", h.User.UpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/tools", h.Tool.AddTool).Methods(http.MethodPost)
	authed.HandleFunc("/my-tools", h.Tool.ListMyTools).Methods(http.MethodGet)
	authed.HandleFunc("/cart/checkout", h.Cart.Checkout).Methods(http.MethodPost)
	authed.HandleFunc("/rentals", h.Rental.ListRentals).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}", h.Rental.GetRental).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}/cancel", h.Rental.RequestCancellation).Methods(http.MethodPost)
	authed.HandleFunc("/lendings", h.Rental.ListLendings).Methods(http.MethodGet)
	authed.HandleFunc("/lendings/{id:[0-9]+}/approve-cancellation", h.Rental.ApproveCancellation).Methods(http.MethodPost)
	authed.HandleFunc("/lendings/{id:[0-9]+}/return-deposit", h.Rental.ReturnDeposit).Methods(http.MethodPost)

	return r
}
