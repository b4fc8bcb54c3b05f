package models

import "time"

// Story kinds.
const (
	StoryKindImage = "image"
	StoryKindText  = "text"
)

// Story is an ephemeral content unit. Only stories posted within the last 24
// hours are ever presented to the storefront.
type Story struct {
	ID              string    `json:"id" db:"id"`
	Kind            string    `json:"type" db:"kind"`
	Content         string    `json:"content" db:"content"`
	BackgroundColor *string   `json:"backgroundColor,omitempty" db:"background_color"`
	TextColor       *string   `json:"textColor,omitempty" db:"text_color"`
	PostedAt        time.Time `json:"timestamp" db:"posted_at"`
}
