package models

import "time"

// OrderStatus tracks an order through fulfilment. Transitions happen
// server-side; the storefront only ever creates orders as pending.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// Order represents a placed order. Immutable from the storefront's
// perspective once created.
type Order struct {
	ID        string      `bson:"id" json:"id"`
	UserID    string      `bson:"user_id" json:"userId"`
	Items     []CartItem  `bson:"items" json:"items"`
	Total     float64     `bson:"total" json:"total"`
	Status    OrderStatus `bson:"status" json:"status"`
	CreatedAt time.Time   `bson:"created_at" json:"createdAt"`
}
