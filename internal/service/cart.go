package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

type cartService struct {
	toolRepo   repository.ToolRepository
	userRepo   repository.UserRepository
	rentalRepo repository.RentalRequestRepository
	gateway    PaymentGateway
	currency   string
	now        func() time.Time
}

func NewCartService(
	toolRepo repository.ToolRepository,
	userRepo repository.UserRepository,
	rentalRepo repository.RentalRequestRepository,
	gateway PaymentGateway,
	currency string,
) CartService {
	return &cartService{
		toolRepo:   toolRepo,
		userRepo:   userRepo,
		rentalRepo: rentalRepo,
		gateway:    gateway,
		currency:   currency,
		now:        time.Now,
	}
}

// AddLine puts one unit of a tool on a given date into the cart. The
// tool's current price and deposit are snapshotted into the line; repeat
// adds for the same (tool, date) only bump the quantity and keep the
// original snapshot.
func (s *cartService) AddLine(ctx context.Context, cart *domain.Cart, toolID int32, date string) error {
	return s.add(ctx, cart, toolID, date, 1)
}

// AddLineByToolOnly is the undated variant. Its lines live in a separate
// key namespace (empty date), so a dated and an undated line for the same
// tool never merge.
func (s *cartService) AddLineByToolOnly(ctx context.Context, cart *domain.Cart, toolID int32, quantity int64) error {
	if quantity < 1 {
		quantity = 1
	}
	return s.add(ctx, cart, toolID, "", quantity)
}

func (s *cartService) add(ctx context.Context, cart *domain.Cart, toolID int32, date string, quantity int64) error {
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrToolNotFound
		}
		return err
	}

	cart.Add(domain.CartLine{
		Key:              domain.LineKey{ToolID: toolID, Date: date},
		Name:             tool.Name,
		UnitPriceCents:   tool.DailyPriceCents,
		UnitDepositCents: tool.DepositCents,
		Quantity:         quantity,
	})
	return nil
}

func (s *cartService) RemoveOne(cart *domain.Cart, key domain.LineKey) {
	cart.RemoveOne(key)
}

// Checkout flattens the cart into gateway line items, opens a checkout
// session, and creates one pending rental request per dated line carrying
// the session's payment reference. Nothing reaches the gateway for a cart
// with no payable items.
func (s *cartService) Checkout(ctx context.Context, renterID int32, cart *domain.Cart) (*CheckoutResult, error) {
	items := cart.LineItems()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCheckout
	}

	renter, err := s.userRepo.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{"renter_id": fmt.Sprintf("%d", renterID)}
	logger.ExternalServiceCall("payment-gateway", "create-checkout-session", "renter_id", renterID, "items", len(items))
	sess, err := s.gateway.CreateCheckoutSession(ctx, renter.Email, items, metadata)
	logger.ExternalServiceResult("payment-gateway", "create-checkout-session", err, "renter_id", renterID)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{
		PaymentRef:  sess.PaymentRef,
		CheckoutURL: sess.URL,
	}

	for _, line := range cart.Lines() {
		if line.Key.Date == "" {
			// Undated lines are charged but reserve no calendar slot.
			continue
		}
		req := &domain.RentalRequest{
			ToolID:             line.Key.ToolID,
			RenterID:           renterID,
			StartDate:          line.Key.Date,
			EndDate:            line.Key.Date,
			Status:             domain.RequestStatusPending,
			RequestedAt:        s.now(),
			RentalAmountCents:  line.UnitPriceCents * line.Quantity,
			DepositAmountCents: line.UnitDepositCents * line.Quantity,
			Currency:           s.currency,
		}
		if sess.PaymentRef != "" {
			ref := sess.PaymentRef
			req.PaymentIntentRef = &ref
		}
		if err := s.rentalRepo.Create(ctx, req); err != nil {
			return nil, err
		}
		result.Requests = append(result.Requests, req)
	}

	return result, nil
}

// CartStore holds one cart per browser session. Checkout drops the
// session's cart; sessions idle past the TTL are evicted so abandoned
// carts do not accumulate for the life of the process.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*cartEntry
	ttl   time.Duration
	now   func() time.Time
}

type cartEntry struct {
	cart     *domain.Cart
	lastSeen time.Time
}

const defaultCartTTL = 24 * time.Hour

func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]*cartEntry),
		ttl:   defaultCartTTL,
		now:   time.Now,
	}
}

func (s *CartStore) GetOrCreate(sessionID string) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.carts[sessionID]
	if !ok {
		entry = &cartEntry{cart: domain.NewCart()}
		s.carts[sessionID] = entry
	}
	entry.lastSeen = s.now()
	return entry.cart
}

func (s *CartStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// PurgeIdle evicts sessions not touched within the TTL and reports how
// many were removed.
func (s *CartStore) PurgeIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, entry := range s.carts {
		if entry.lastSeen.Before(cutoff) {
			delete(s.carts, id)
			evicted++
		}
	}
	return evicted
}

// StartJanitor purges idle carts on the given interval until the context
// is cancelled.
func (s *CartStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.PurgeIdle(); n > 0 {
					logger.Info("evicted idle carts", "count", n)
				}
			}
		}
	}()
}
