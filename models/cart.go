package models

// CartItem is one line of a shopping cart: a product snapshot taken at
// add time plus the chosen quantity. The snapshot is deliberately not
// refreshed afterwards, so price and stock can diverge from the live
// product until checkout.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// Subtotal is the snapshot price times quantity.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
