package service

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/refund"

	"toolshare-backend/internal/domain"
)

type stripeGateway struct {
	currency   string
	successURL string
	cancelURL  string
}

// NewStripeGateway wires the Stripe client as the payment gateway. Refunds
// are issued against the payment intent captured at checkout; the caller's
// idempotency key makes retried refunds single-shot on Stripe's side.
func NewStripeGateway(apiKey, currency, successURL, cancelURL string) PaymentGateway {
	stripe.Key = apiKey
	return &stripeGateway{
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (g *stripeGateway) Refund(ctx context.Context, paymentRef string, amountCents int64, metadata map[string]string, idempotencyKey string) (*RefundResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentRef),
		Amount:        stripe.Int64(amountCents),
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey)
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	r, err := refund.New(params)
	if err != nil {
		return nil, &domain.GatewayError{Op: "refund", Err: err}
	}
	return &RefundResult{RefundID: r.ID, Status: string(r.Status)}, nil
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, customerEmail string, items []domain.LineItem, metadata map[string]string) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(g.currency),
				UnitAmount: stripe.Int64(item.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}
	params.Context = ctx
	if customerEmail != "" {
		params.CustomerEmail = stripe.String(customerEmail)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, &domain.GatewayError{Op: "create-checkout-session", Err: err}
	}

	out := &CheckoutSession{ID: s.ID, URL: s.URL}
	if s.PaymentIntent != nil {
		out.PaymentRef = s.PaymentIntent.ID
	}
	return out, nil
}
