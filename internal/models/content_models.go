package models

// Testimonial is a read-only marketing quote shown on the landing surface.
type Testimonial struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Role      string `json:"role" db:"role"`
	Content   string `json:"content" db:"content"`
	Rating    int    `json:"rating" db:"rating"`
	AvatarURL string `json:"avatarUrl" db:"avatar_url"`
}

// Feature is a read-only brand selling point shown on the landing surface.
type Feature struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
}
