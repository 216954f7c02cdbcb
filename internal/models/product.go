package models

import "time"

// Product is a storefront catalog entry. ImageObject is the object key in
// the image bucket; ImageURL is resolved to a presigned URL by the product
// service and never stored.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	ImageObject string    `json:"-" db:"image_object"`
	ImageURL    string    `json:"image,omitempty" db:"-"`
	Category    *string   `json:"category,omitempty" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
