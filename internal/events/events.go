// Package events publishes order lifecycle events for downstream consumers
// (fulfilment dashboards, mail). Publishing is best-effort: a failed publish
// is logged by the caller and never fails the request.
package events

import (
	"context"
	"time"
)

const (
	TopicOrderPlaced = `storefront.order-placed`
	TopicOrderStatus = `storefront.order-status`
)

type OrderPlacedEvent struct {
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	Amount        string    `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

type OrderStatusEvent struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Nop is used when no brokers are configured and in tests.
type Nop struct{}

func (Nop) Publish(context.Context, string, []byte, []byte) error { return nil }
