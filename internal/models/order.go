package models

import "time"

// Order is the header row written for an order submission. The id is
// generated by the database; DeliveryDateTime is carried as sanitized text
// and typed by the storage schema.
type Order struct {
	ID               int64     `json:"id" db:"id"`
	FullName         string    `json:"full_name" db:"full_name"`
	PhoneNumber      string    `json:"phone_number" db:"phone_number"`
	Email            string    `json:"email" db:"email"`
	DeliveryArea     string    `json:"delivery_area" db:"delivery_area"`
	DeliveryDateTime string    `json:"delivery_datetime" db:"delivery_datetime"`
	Notes            string    `json:"notes" db:"notes"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// OrderItem is one product line under a committed order. Every item row
// references the generated id of its order header; an item with
// quantity <= 0, price < 0 or product id <= 0 is never written.
type OrderItem struct {
	OrderID      int64   `json:"order_id" db:"order_id"`
	ProductID    int64   `json:"product_id" db:"product_id"`
	ProductName  string  `json:"product_name" db:"product_name"`
	Quantity     int     `json:"quantity" db:"quantity"`
	PricePerUnit float64 `json:"price_per_unit" db:"price_per_unit"`
}
