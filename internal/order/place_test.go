package order

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mercatto/storefront/internal/cart"
	"github.com/mercatto/storefront/internal/product"
)

func catalog(products ...product.Product) func(string) (*product.Product, bool) {
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return func(id string) (*product.Product, bool) {
		p, ok := byID[id]
		if !ok {
			return nil, false
		}
		return &p, true
	}
}

func TestSnapshotItems_CopiesCatalogAndAttachesVariant(t *testing.T) {
	doc := cart.Document{
		"A": {cart.Variant{Size: "M", Color: "Red"}: 2},
	}
	lookup := catalog(product.Product{
		ID: "A", Name: "Round Neck Tee", Price: "500",
		Images: []string{"a-front.jpg", "a-back.jpg"},
	})

	items := SnapshotItems(doc, lookup)
	if len(items) != 1 {
		t.Fatalf("items=%v, want 1", items)
	}
	want := Item{
		ProductID: "A", Name: "Round Neck Tee", Price: "500",
		Image: "a-front.jpg", Size: "M", Color: "Red", Quantity: 2,
	}
	if items[0] != want {
		t.Fatalf("item=%+v, want %+v", items[0], want)
	}
}

func TestSnapshotItems_SkipsVanishedProductsAndNonPositive(t *testing.T) {
	doc := cart.Document{
		"A":    {cart.Variant{Size: "M", Color: "Red"}: 1},
		"gone": {cart.Variant{Size: "S", Color: "Red"}: 3},
		"B":    {cart.Variant{Size: "L", Color: "Blue"}: 0},
	}
	lookup := catalog(
		product.Product{ID: "A", Name: "Tee", Price: "500"},
		product.Product{ID: "B", Name: "Hoodie", Price: "900"},
	)

	items := SnapshotItems(doc, lookup)
	if len(items) != 1 || items[0].ProductID != "A" {
		t.Fatalf("items=%+v, want only A", items)
	}
}

func TestAmountDue_AddsFlatDeliveryFee(t *testing.T) {
	items := []Item{
		{ProductID: "A", Price: "500", Quantity: 2},
	}
	got, err := AmountDue(items, decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("amount: %v", err)
	}
	if want := decimal.NewFromInt(1010); !got.Equal(want) {
		t.Fatalf("amount=%s, want %s", got, want)
	}
}

func TestAmountDue_BadPrice(t *testing.T) {
	items := []Item{{ProductID: "A", Price: "five", Quantity: 1}}
	if _, err := AmountDue(items, decimal.NewFromInt(10)); err == nil {
		t.Fatal("expected error for malformed price")
	}
}

func TestKnownStatus(t *testing.T) {
	for _, s := range Statuses {
		if !KnownStatus(s) {
			t.Fatalf("%q should be known", s)
		}
	}
	if KnownStatus("Lost In Transit") {
		t.Fatal("unexpected status accepted as known")
	}
}
