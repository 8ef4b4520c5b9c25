// Package cart holds the per-user cart document and the variant merge
// operations on it. The document is stored as a single JSON object per user:
// product id -> variant key -> quantity.
package cart

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var ErrNotInCart = errors.New("item not found in cart")

// Document is the nested cart mapping. Mutating operations keep two
// invariants: a quantity <= 0 never survives a SetQuantity, and a product
// entry with no variants left is pruned.
type Document map[string]map[Variant]int

// Add increments the addressed variant by one, initializing it to one when
// absent. The document is untouched on a validation error.
func (d Document) Add(itemID string, v Variant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	variants, ok := d[itemID]
	if !ok {
		variants = make(map[Variant]int)
		d[itemID] = variants
	}
	variants[v]++
	return nil
}

// SetQuantity overwrites the quantity of an existing variant. A target of
// zero or less removes the variant, and the product entry too when that was
// its last variant. Addressing a variant that is not in the cart is an
// explicit error rather than an upsert.
func (d Document) SetQuantity(itemID string, v Variant, quantity int) error {
	if err := v.Validate(); err != nil {
		return err
	}
	variants, ok := d[itemID]
	if !ok {
		return ErrNotInCart
	}
	if _, ok := variants[v]; !ok {
		return ErrNotInCart
	}
	if quantity <= 0 {
		delete(variants, v)
		if len(variants) == 0 {
			delete(d, itemID)
		}
		return nil
	}
	variants[v] = quantity
	return nil
}

// Line is one flattened cart entry with the variant key decomposed.
type Line struct {
	ItemID   string `json:"item_id"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// Lines flattens the document for rendering and totalling. Entries whose
// quantity is not strictly positive are skipped even if present in the
// stored document. Output order is deterministic.
func (d Document) Lines() []Line {
	out := make([]Line, 0, len(d))
	for itemID, variants := range d {
		for v, qty := range variants {
			if qty <= 0 {
				continue
			}
			out = append(out, Line{ItemID: itemID, Size: v.Size, Color: v.Color, Quantity: qty})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemID != out[j].ItemID {
			return out[i].ItemID < out[j].ItemID
		}
		if out[i].Size != out[j].Size {
			return out[i].Size < out[j].Size
		}
		return out[i].Color < out[j].Color
	})
	return out
}

// Count reports the total number of units in the cart.
func (d Document) Count() int {
	n := 0
	for _, variants := range d {
		for _, qty := range variants {
			if qty > 0 {
				n += qty
			}
		}
	}
	return n
}

// Total computes the monetary cart total by joining lines against the live
// catalog price. Products the lookup no longer knows are skipped, matching
// the read path of the storefront.
func Total(lines []Line, price func(itemID string) (decimal.Decimal, bool)) decimal.Decimal {
	total := decimal.Zero
	for _, ln := range lines {
		p, ok := price(ln.ItemID)
		if !ok {
			continue
		}
		total = total.Add(p.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	return total
}
