package models

import "time"

// Product is a single catalog item. Items with a VideoURL are eligible for the
// reel surface regardless of category.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	Price       float64   `json:"price" db:"price"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	VideoURL    *string   `json:"videoUrl,omitempty" db:"video_url"`
	Sizes       []string  `json:"sizes" db:"sizes"`
	LikesCount  int       `json:"likes_count" db:"likes_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Product categories used by the storefront. Kept as labels, not an enum type,
// since the admin panel may introduce new ones.
const (
	CategoryDresses = "Vestidos"
	CategoryCoats   = "Casacos"
	CategorySkirts  = "Saias"
	CategoryBlouses = "Blusas"
)
