package models

import "time"

// Client represents a registered VIP customer. The WhatsApp contact is the
// natural unique key: one contact maps to at most one client record and one
// access code for its lifetime.
type Client struct {
	ID         string    `json:"id" db:"id"`
	FirstName  string    `json:"first_name" db:"first_name" binding:"required"`
	LastName   string    `json:"last_name" db:"last_name" binding:"required"`
	Nickname   *string   `json:"nickname,omitempty" db:"nickname"`
	WhatsApp   string    `json:"whatsapp" db:"whatsapp" binding:"required"`
	AccessCode string    `json:"access_code" db:"access_code"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
