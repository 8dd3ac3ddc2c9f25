package models

import "time"

// Product is the server-authoritative catalog entry. The catalog file is
// read-only from the API's point of view.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
}

type Customer struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// OrderItem carries the unit price assigned from the catalog at
// submission time. Client-supplied prices are never persisted.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Order struct {
	Ref       string      `json:"ref"`
	CreatedAt time.Time   `json:"createdAt"`
	Customer  Customer    `json:"customer"`
	Notes     *string     `json:"notes"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
}

type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}
