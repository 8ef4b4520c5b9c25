// Package payment wraps the external payment gateway behind a small
// interface so handlers can be tested without the network.
package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"

	"github.com/mercatto/storefront/internal/order"
)

// Checkout creates a hosted payment session for an order and returns the
// URL the storefront redirects the customer to.
type Checkout interface {
	CreateSession(ctx context.Context, o *order.Order, deliveryFee decimal.Decimal) (string, error)
}

type Stripe struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

func NewStripe(apiKey, currency, frontendURL string) *Stripe {
	stripe.Key = apiKey
	return &Stripe{
		Currency:   currency,
		SuccessURL: frontendURL + "/verify?success=true&orderId=",
		CancelURL:  frontendURL + "/verify?success=false&orderId=",
	}
}

func (s *Stripe) CreateSession(ctx context.Context, o *order.Order, deliveryFee decimal.Decimal) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(o.Items)+1)
	for _, it := range o.Items {
		unit, err := toMinorUnits(it.Price)
		if err != nil {
			return "", fmt.Errorf("product %s: %w", it.ProductID, err)
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(s.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(unit),
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}
	feeUnits, err := toMinorUnits(deliveryFee.String())
	if err != nil {
		return "", err
	}
	lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(s.Currency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String("Delivery Charges"),
			},
			UnitAmount: stripe.Int64(feeUnits),
		},
		Quantity: stripe.Int64(1),
	})

	params := &stripe.CheckoutSessionParams{
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.SuccessURL + o.ID),
		CancelURL:  stripe.String(s.CancelURL + o.ID),
	}
	params.AddMetadata("order_id", o.ID)
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// toMinorUnits converts a decimal price string to the gateway's smallest
// currency unit (cents).
func toMinorUnits(price string) (int64, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0, fmt.Errorf("bad price %q: %w", price, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
