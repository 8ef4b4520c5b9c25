package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mercatto/storefront/internal/cart"
	"github.com/mercatto/storefront/internal/product"
)

// Payment method tags persisted on the order.
const (
	MethodCOD    = "COD"
	MethodStripe = "Stripe"
)

// SnapshotItems copies the current catalog record for every positive
// quantity cart line, attaching the selected size, color and quantity.
// Lines whose product no longer exists in the catalog are skipped, the same
// way the cart read path skips them.
func SnapshotItems(doc cart.Document, lookup func(itemID string) (*product.Product, bool)) []Item {
	lines := doc.Lines()
	items := make([]Item, 0, len(lines))
	for _, ln := range lines {
		p, ok := lookup(ln.ItemID)
		if !ok {
			continue
		}
		it := Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Size:      ln.Size,
			Color:     ln.Color,
			Quantity:  ln.Quantity,
		}
		if len(p.Images) > 0 {
			it.Image = p.Images[0]
		}
		items = append(items, it)
	}
	return items
}

// AmountDue sums price*quantity over the snapshot and adds the flat
// delivery fee. The fee is applied at checkout time only and is not stored
// per item.
func AmountDue(items []Item, deliveryFee decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return decimal.Zero, fmt.Errorf("bad price %q on product %s: %w", it.Price, it.ProductID, err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Add(deliveryFee), nil
}
