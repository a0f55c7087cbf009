package cart

import (
	"testing"

	"github.com/feliperosa-dev/storefront-api/client/storage"
	"github.com/feliperosa-dev/storefront-api/models"
)

func product(id string, price float64) models.Product {
	return models.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: price,
		Stock: 10,
	}
}

func TestAddMergesSameProduct(t *testing.T) {
	m := NewManager(storage.NewMemory())

	m.Add(product("7", 20), 2)
	m.Add(product("7", 20), 3)

	items := m.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line after merging, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	m := NewManager(storage.NewMemory())

	m.Add(product("a", 1), 1)
	m.Add(product("b", 2), 1)
	m.Add(product("a", 1), 1) // merge must not reorder

	items := m.Items()
	if len(items) != 2 || items[0].ProductID != "a" || items[1].ProductID != "b" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestUpdateQuantityFloor(t *testing.T) {
	m := NewManager(storage.NewMemory())
	m.Add(product("1", 10), 2)
	m.Add(product("2", 5), 1)

	m.UpdateQuantity("1", 0)
	if m.Len() != 1 {
		t.Fatalf("quantity 0 should remove the item, have %d lines", m.Len())
	}

	m.UpdateQuantity("2", -5)
	if m.Len() != 0 {
		t.Fatalf("negative quantity should remove the item, have %d lines", m.Len())
	}

	// Updating a missing id must not add an item.
	m.UpdateQuantity("ghost", 3)
	if m.Len() != 0 {
		t.Fatalf("update of unknown id added an item: %+v", m.Items())
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	m := NewManager(storage.NewMemory())
	m.Add(product("1", 10), 1)

	m.Remove("does-not-exist")
	if m.Len() != 1 {
		t.Fatalf("removing an absent product changed the cart: %+v", m.Items())
	}
}

func TestTotal(t *testing.T) {
	m := NewManager(storage.NewMemory())
	m.Add(product("1", 10), 2)
	m.Add(product("2", 5), 3)

	if got := m.Total(); got != 35 {
		t.Fatalf("expected total 35, got %v", got)
	}

	m.Remove("2")
	if got := m.Total(); got != 20 {
		t.Fatalf("expected total 20 after removal, got %v", got)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := storage.NewMemory()

	m := NewManager(store)
	m.Add(product("7", 20), 3)
	m.Add(product("9", 4.5), 1)

	// A fresh manager over the same storage sees the same cart.
	restored := NewManager(store)

	want := m.Items()
	got := restored.Items()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d differs: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestPersistenceRoundTripOnDisk(t *testing.T) {
	dir, err := storage.NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	m := NewManager(dir)
	m.Add(product("7", 20), 3)

	restored := NewManager(dir)
	if restored.Len() != 1 || restored.Total() != 60 {
		t.Fatalf("disk round-trip lost the cart: %+v", restored.Items())
	}
}

func TestGarbledStorageStartsEmpty(t *testing.T) {
	store := storage.NewMemory()
	store.Set("cart", []byte("{not json"))

	m := NewManager(store)
	if m.Len() != 0 {
		t.Fatalf("garbled entry should yield an empty cart, got %+v", m.Items())
	}
}

func TestClear(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(store)
	m.Add(product("1", 10), 1)

	m.Clear()
	if m.Len() != 0 || m.Total() != 0 {
		t.Fatalf("clear left items behind: %+v", m.Items())
	}
	if NewManager(store).Len() != 0 {
		t.Fatal("clear was not persisted")
	}
}
