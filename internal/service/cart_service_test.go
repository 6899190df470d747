package service

import (
	"errors"
	"testing"

	"github.com/pixelcraft-pc/storefront/internal/models"
)

func TestCartAddSameProductTwiceIncrementsQuantity(t *testing.T) {
	fx := newStoreFixture(t)
	pc := seedPC(t, fx.db, "neon-pro", "2999.90", true)
	ref := CartRef{SessionKey: "sess-1"}

	for i := 0; i < 2; i++ {
		count, err := fx.carts.Add(ref, pc.ID)
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 cart line, got %d", count)
		}
	}

	view, err := fx.carts.View(ref)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart items: %+v", view.Items)
	}
	if view.Total.String() != "5999.80" {
		t.Fatalf("expected total 5999.80, got %s", view.Total.String())
	}
}

func TestCartAddMissingOrInactiveProductLeavesCartUnchanged(t *testing.T) {
	fx := newStoreFixture(t)
	inactive := seedPC(t, fx.db, "hidden", "1000.00", false)
	ref := CartRef{SessionKey: "sess-2"}

	if _, err := fx.carts.Add(ref, 9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found for missing pc, got %v", err)
	}
	if _, err := fx.carts.Add(ref, inactive.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for inactive pc, got %v", err)
	}
	if n := countRows(t, fx.db, &models.CartItem{}); n != 0 {
		t.Fatalf("expected no cart items, got %d", n)
	}
	view, err := fx.carts.View(ref)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if view.Count != 0 || view.Total.String() != "0.00" {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestCartSetQuantityAndRemove(t *testing.T) {
	fx := newStoreFixture(t)
	a := seedPC(t, fx.db, "alpha", "1000.00", true)
	b := seedPC(t, fx.db, "beta", "2000.00", true)
	ref := CartRef{SessionKey: "sess-3"}
	if _, err := fx.carts.Add(ref, a.ID); err != nil {
		t.Fatalf("add a failed: %v", err)
	}
	if _, err := fx.carts.Add(ref, b.ID); err != nil {
		t.Fatalf("add b failed: %v", err)
	}

	view, err := fx.carts.SetQuantity(ref, a.ID, 3)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if view.Total.String() != "5000.00" {
		t.Fatalf("expected 5000.00, got %s", view.Total.String())
	}
	if _, err := fx.carts.SetQuantity(ref, a.ID, 100); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}

	view, err = fx.carts.SetQuantity(ref, b.ID, 0)
	if err != nil {
		t.Fatalf("set zero quantity failed: %v", err)
	}
	if view.Count != 1 || view.Items[0].ProductID != a.ID {
		t.Fatalf("expected only alpha left, got %+v", view.Items)
	}
	if _, err := fx.carts.Remove(ref, b.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected cart item not found, got %v", err)
	}

	if err := fx.carts.Clear(ref); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	view, _ = fx.carts.View(ref)
	if view.Count != 0 {
		t.Fatalf("expected empty cart after clear, got %d", view.Count)
	}
}

func TestCartKeepsPriceSnapshot(t *testing.T) {
	fx := newStoreFixture(t)
	pc := seedPC(t, fx.db, "snapshot", "1500.00", true)
	ref := CartRef{SessionKey: "sess-4"}
	if _, err := fx.carts.Add(ref, pc.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := fx.db.Model(pc).Update("price", "1800.00").Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	view, err := fx.carts.View(ref)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if view.Items[0].Price.String() != "1500.00" {
		t.Fatalf("expected snapshot 1500.00, got %s", view.Items[0].Price.String())
	}
}
