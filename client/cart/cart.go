// Package cart keeps the quantity-by-product mapping for the active
// shopping session. Items carry a snapshot of the product taken at add
// time; the snapshot is never refreshed, so checkout is the only place a
// divergence from the live catalog can surface.
package cart

import (
	"encoding/json"

	"github.com/feliperosa-dev/storefront-api/client/storage"
	"github.com/feliperosa-dev/storefront-api/models"
)

const storageKey = "cart"

// Manager holds the cart items in insertion order and re-persists the
// whole collection after every mutation. It is not safe for concurrent
// use; the cart belongs to a single browsing session.
type Manager struct {
	store storage.Store
	items []models.CartItem
}

// NewManager restores the persisted cart, or starts empty when there is
// none or the stored entry is garbled.
func NewManager(store storage.Store) *Manager {
	m := &Manager{store: store}

	raw, err := store.Get(storageKey)
	if err != nil || raw == nil {
		return m
	}
	if err := json.Unmarshal(raw, &m.items); err != nil {
		m.items = nil
	}
	return m
}

// Add puts quantity units of product in the cart. Adding a product that
// is already present merges into the existing line instead of creating a
// second one. Stock clamping is the caller's concern.
func (m *Manager) Add(product models.Product, quantity int) {
	if quantity < 1 {
		return
	}

	for i := range m.items {
		if m.items[i].ProductID == product.ID {
			m.items[i].Quantity += quantity
			m.persist()
			return
		}
	}

	m.items = append(m.items, models.CartItem{
		ProductID: product.ID,
		Quantity:  quantity,
		Product:   product,
	})
	m.persist()
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op, not an error.
func (m *Manager) Remove(productID string) {
	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.persist()
			return
		}
	}
}

// UpdateQuantity overwrites the quantity for productID. Zero or negative
// removes the line. Unknown ids are ignored.
func (m *Manager) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		m.Remove(productID)
		return
	}

	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items[i].Quantity = quantity
			m.persist()
			return
		}
	}
}

// Clear empties the cart.
func (m *Manager) Clear() {
	m.items = nil
	m.persist()
}

// Items returns a copy of the cart lines in insertion order.
func (m *Manager) Items() []models.CartItem {
	out := make([]models.CartItem, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of distinct product lines.
func (m *Manager) Len() int {
	return len(m.items)
}

// Total recomputes the cart total from the snapshot prices on every call.
func (m *Manager) Total() float64 {
	var total float64
	for _, item := range m.items {
		total += item.Subtotal()
	}
	return total
}

// persist writes the whole collection. Best-effort: a full disk loses the
// persisted copy, not the in-memory cart.
func (m *Manager) persist() {
	raw, err := json.Marshal(m.items)
	if err != nil {
		return
	}
	m.store.Set(storageKey, raw)
}
