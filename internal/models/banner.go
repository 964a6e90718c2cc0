package models

import "time"

// Banner is a carousel entry. DisplayOrder drives the sort; it is not unique,
// ties fall back to insertion order (ascending id).
type Banner struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Subtitle     *string   `db:"subtitle" json:"subtitle,omitempty"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	LinkURL      *string   `db:"link_url" json:"link_url,omitempty"`
	LinkText     *string   `db:"link_text" json:"link_text,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
