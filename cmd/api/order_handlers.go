package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mercatto/storefront/internal/cart"
	"github.com/mercatto/storefront/internal/config"
	"github.com/mercatto/storefront/internal/events"
	"github.com/mercatto/storefront/internal/httpx"
	"github.com/mercatto/storefront/internal/order"
	"github.com/mercatto/storefront/internal/payment"
	"github.com/mercatto/storefront/internal/product"
)

type placeOrderRequest struct {
	Address order.Address `json:"address" binding:"required"`
}

// buildOrder snapshots the caller's cart against the live catalog. The
// returned order is not yet persisted.
func buildOrder(ctx context.Context, userID string, carts cart.Repository,
	products product.Repository, cfg config.Config, addr order.Address) (*order.Order, error) {

	doc, err := carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := order.SnapshotItems(doc, func(itemID string) (*product.Product, bool) {
		p, err := products.GetByID(ctx, itemID)
		if err != nil {
			return nil, false
		}
		return p, true
	})
	if len(items) == 0 {
		return nil, errEmptyCart
	}
	amount, err := order.AmountDue(items, cfg.DeliveryFee)
	if err != nil {
		return nil, err
	}
	return &order.Order{
		ID:      uuid.NewString(),
		UserID:  userID,
		Items:   items,
		Amount:  amount.StringFixed(2),
		Address: addr,
		Status:  order.StatusPlaced,
	}, nil
}

var errEmptyCart = errors.New("cart is empty")

// placeOrderHandler is the cash-on-delivery variant: the payment method is
// confirmed synchronously, so the order persists paid. Clearing the cart is
// a second, independent write; if it fails the order still stands.
func placeOrderHandler(orders order.Repository, carts cart.Repository,
	products product.Repository, pub events.Publisher, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "address is required")
			return
		}
		userID := httpx.UserID(c)
		ctx := c.Request.Context()

		o, err := buildOrder(ctx, userID, carts, products, cfg, req.Address)
		if err != nil {
			failBuild(c, err)
			return
		}
		o.PaymentMethod = order.MethodCOD
		o.Payment = true

		if err := orders.Create(ctx, o); err != nil {
			log.Printf("[order] create: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		if err := carts.Clear(ctx, userID); err != nil {
			log.Printf("[order] clear cart for %s: %v", userID, err)
		}
		publishPlaced(ctx, pub, o)
		httpx.OK(c, http.StatusCreated, gin.H{"message": "order placed", "order_id": o.ID})
	}
}

// placeStripeOrderHandler persists the order unpaid and hands the caller a
// hosted checkout URL. The cart is cleared only after verification.
func placeStripeOrderHandler(orders order.Repository, carts cart.Repository,
	products product.Repository, checkout payment.Checkout, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checkout == nil {
			httpx.Fail(c, http.StatusServiceUnavailable, "payment gateway not configured")
			return
		}
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "address is required")
			return
		}
		userID := httpx.UserID(c)
		ctx := c.Request.Context()

		o, err := buildOrder(ctx, userID, carts, products, cfg, req.Address)
		if err != nil {
			failBuild(c, err)
			return
		}
		o.PaymentMethod = order.MethodStripe
		o.Payment = false

		if err := orders.Create(ctx, o); err != nil {
			log.Printf("[order] create: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		url, err := checkout.CreateSession(ctx, o, cfg.DeliveryFee)
		if err != nil {
			log.Printf("[order] checkout session for %s: %v", o.ID, err)
			httpx.Fail(c, http.StatusBadGateway, "payment gateway error")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"session_url": url, "order_id": o.ID})
	}
}

type verifyOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Success string `json:"success"`
}

// verifyOrderHandler resolves an external-payment order after the gateway
// redirect: confirmed payments are marked paid and the cart cleared;
// cancelled ones delete the pending order (the one compensation step in the
// flow).
func verifyOrderHandler(orders order.Repository, carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "order_id is required")
			return
		}
		ctx := c.Request.Context()
		userID := httpx.UserID(c)

		if ok, _ := strconv.ParseBool(req.Success); !ok {
			if _, err := orders.Delete(ctx, req.OrderID); err != nil {
				log.Printf("[order] delete %s: %v", req.OrderID, err)
			}
			httpx.Fail(c, http.StatusOK, "payment cancelled")
			return
		}
		if err := orders.SetPayment(ctx, req.OrderID, true); err != nil {
			if errors.Is(err, order.ErrNotFound) {
				httpx.Fail(c, http.StatusNotFound, "order not found")
				return
			}
			log.Printf("[order] set payment %s: %v", req.OrderID, err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		if err := carts.Clear(ctx, userID); err != nil {
			log.Printf("[order] clear cart for %s: %v", userID, err)
		}
		httpx.Message(c, http.StatusOK, "payment verified")
	}
}

func userOrdersHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListByUser(c.Request.Context(), httpx.UserID(c), 0, 0)
		if err != nil {
			log.Printf("[order] list by user: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		if list == nil {
			list = []order.Order{}
		}
		httpx.OK(c, http.StatusOK, gin.H{"orders": list})
	}
}

func listOrdersHandler(orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListAll(c.Request.Context(), 0, 0)
		if err != nil {
			log.Printf("[order] list: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		if list == nil {
			list = []order.Order{}
		}
		httpx.OK(c, http.StatusOK, gin.H{"orders": list})
	}
}

type updateStatusRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// updateStatusHandler overwrites the stored status with whatever the admin
// sent. There is no transition table: Delivered -> Order Placed goes
// through. Values outside the published vocabulary are accepted and logged.
func updateStatusHandler(orders order.Repository, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "order_id and status are required")
			return
		}
		if !order.KnownStatus(req.Status) {
			log.Printf("[order] status %q for %s is outside the known vocabulary", req.Status, req.OrderID)
		}
		ctx := c.Request.Context()
		if err := orders.UpdateStatus(ctx, req.OrderID, req.Status); err != nil {
			if errors.Is(err, order.ErrNotFound) {
				httpx.Fail(c, http.StatusNotFound, "order not found")
				return
			}
			log.Printf("[order] update status: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		publish(ctx, pub, events.TopicOrderStatus, req.OrderID, events.OrderStatusEvent{
			OrderID:   req.OrderID,
			Status:    req.Status,
			UpdatedAt: time.Now().UTC(),
		})
		httpx.Message(c, http.StatusOK, "status updated")
	}
}

func failBuild(c *gin.Context, err error) {
	if errors.Is(err, errEmptyCart) {
		httpx.Fail(c, http.StatusBadRequest, "cart is empty")
		return
	}
	log.Printf("[order] build: %v", err)
	httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
}

func publishPlaced(ctx context.Context, pub events.Publisher, o *order.Order) {
	publish(ctx, pub, events.TopicOrderPlaced, o.ID, events.OrderPlacedEvent{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Amount:        o.Amount,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     time.Now().UTC(),
	})
}

// publish is best-effort: event delivery never fails the request.
func publish(ctx context.Context, pub events.Publisher, topic, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[events] marshal %s: %v", topic, err)
		return
	}
	if err := pub.Publish(ctx, topic, []byte(key), raw); err != nil {
		log.Printf("[events] publish %s: %v", topic, err)
	}
}
