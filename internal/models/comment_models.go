package models

import "time"

// Comment is free text left by a client on a product. Comments are never
// edited; they are created once and only ever listed.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	ClientID  string    `json:"client_id" db:"client_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Denormalized display fields, populated by joined queries only.
	FirstName    string `json:"first_name,omitempty" db:"first_name"`
	ProductName  string `json:"product_name,omitempty" db:"product_name"`
	ProductImage string `json:"product_image,omitempty" db:"product_image"`
}
