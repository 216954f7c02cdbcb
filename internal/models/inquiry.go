package models

import "time"

// Inquiry is the single row written for an inquiry submission. It has no
// child entities. InquiryProductID is free text from the form and defaults
// to "N/A" when the client sends none.
type Inquiry struct {
	ID               int64     `json:"id" db:"id"`
	FullName         string    `json:"full_name" db:"full_name"`
	PhoneNumber      string    `json:"phone_number" db:"phone_number"`
	Email            string    `json:"email" db:"email"`
	DeliveryArea     string    `json:"delivery_area" db:"delivery_area"`
	InquiryProductID string    `json:"inquiry_product_id" db:"inquiry_product_id"`
	Message          string    `json:"message" db:"message"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
