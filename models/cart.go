package models

// CartItem is one line in a cart or order: a product plus a quantity.
// Quantity is always at least 1; the upper bound (stock) is enforced at
// display time, not here.
type CartItem struct {
	Product  `bson:",inline"`
	Quantity int `bson:"quantity" json:"quantity"`
}

// Subtotal returns price × quantity for this line.
func (ci CartItem) Subtotal() float64 {
	return ci.Price * float64(ci.Quantity)
}
