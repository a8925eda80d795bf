package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAddItemNewLine(t *testing.T) {
	cart := NewCart("session-1")
	item := cart.AddItem(1, "Widget", "", price("10.00"), 2)

	if len(cart.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(cart.Items))
	}
	if item.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", item.Quantity)
	}
	if !cart.TotalAmount().Equal(price("20.00")) {
		t.Errorf("total = %s, want 20.00", cart.TotalAmount())
	}
	if cart.TotalItems() != 2 {
		t.Errorf("total items = %d, want 2", cart.TotalItems())
	}
}

func TestAddItemMergesQuantity(t *testing.T) {
	cart := NewCart("session-1")
	cart.AddItem(1, "Widget", "", price("10.00"), 2)
	cart.AddItem(1, "Widget", "", price("10.00"), 3)

	if len(cart.Items) != 1 {
		t.Fatalf("got %d items, want merged single line", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", cart.Items[0].Quantity)
	}
	if !cart.TotalAmount().Equal(price("50.00")) {
		t.Errorf("total = %s, want 50.00", cart.TotalAmount())
	}
}

func TestAddItemKeepsPriceSnapshot(t *testing.T) {
	cart := NewCart("session-1")
	cart.AddItem(1, "Widget", "", price("10.00"), 1)
	// 同商品再次加入时传入新价格，快照不变
	cart.AddItem(1, "Widget", "", price("99.00"), 1)

	if !cart.Items[0].UnitPrice.Equal(price("10.00")) {
		t.Errorf("unit price = %s, want snapshot 10.00", cart.Items[0].UnitPrice)
	}
	if !cart.TotalAmount().Equal(price("20.00")) {
		t.Errorf("total = %s, want 20.00", cart.TotalAmount())
	}
}

func TestRemoveItem(t *testing.T) {
	cart := NewCart("session-1")
	cart.AddItem(1, "Widget", "", price("10.00"), 2)
	cart.Items[0].ID = 7

	removed := cart.RemoveItem(7)
	if removed == nil {
		t.Fatal("expected removed item")
	}
	if removed.ProductID != 1 {
		t.Errorf("removed product = %d, want 1", removed.ProductID)
	}
	if len(cart.Items) != 0 {
		t.Errorf("got %d items, want 0", len(cart.Items))
	}
	if !cart.TotalAmount().Equal(decimal.Zero) {
		t.Errorf("total = %s, want 0", cart.TotalAmount())
	}
}

func TestRemoveItemMissing(t *testing.T) {
	cart := NewCart("session-1")
	if removed := cart.RemoveItem(99); removed != nil {
		t.Errorf("expected nil for unknown item, got %+v", removed)
	}
}

func TestClear(t *testing.T) {
	cart := NewCart("session-1")
	cart.AddItem(1, "Widget", "", price("10.00"), 2)
	cart.AddItem(2, "Gadget", "", price("5.50"), 1)

	cart.Clear()

	if len(cart.Items) != 0 {
		t.Errorf("got %d items, want 0", len(cart.Items))
	}
	if cart.TotalItems() != 0 {
		t.Errorf("total items = %d, want 0", cart.TotalItems())
	}
}

func TestSubtotal(t *testing.T) {
	item := CartItem{UnitPrice: price("3.33"), Quantity: 3}
	if !item.Subtotal().Equal(price("9.99")) {
		t.Errorf("subtotal = %s, want 9.99", item.Subtotal())
	}
}

func TestFindItemByID(t *testing.T) {
	cart := NewCart("session-1")
	cart.AddItem(1, "Widget", "", price("10.00"), 1)
	cart.Items[0].ID = 3

	if item := cart.FindItemByID(3); item == nil {
		t.Error("expected to find item by ID")
	}
	if item := cart.FindItemByID(4); item != nil {
		t.Error("expected nil for unknown item ID")
	}
}
