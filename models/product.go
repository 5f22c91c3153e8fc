package models

// Product represents a catalog entry. The cart and order logic treats
// products as read-only; only admins mutate the catalog.
type Product struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	Price       float64 `bson:"price" json:"price"`
	Category    string  `bson:"category" json:"category"`
	Image       string  `bson:"image" json:"image"`
	Stock       int     `bson:"stock" json:"stock"`
	Featured    bool    `bson:"featured,omitempty" json:"featured,omitempty"`
}
