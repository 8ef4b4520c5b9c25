package order

// Fulfilment statuses the admin surface cycles through. The status column
// is a free-form string and updates are NOT validated against this list or
// any progression order: an order can move from Delivered straight back to
// StatusPlaced. The vocabulary exists for clients to render pickers from.
const (
	StatusPlaced         = "Order Placed"
	StatusPacking        = "Packing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
)

var Statuses = []string{
	StatusPlaced,
	StatusPacking,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// KnownStatus reports whether s belongs to the published vocabulary. Used
// only for logging, never for rejection.
func KnownStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}
