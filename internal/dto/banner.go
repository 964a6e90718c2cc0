package dto

// CreateBannerRequest creates a carousel banner.
type CreateBannerRequest struct {
	Title        string  `json:"title" validate:"required"`
	Subtitle     *string `json:"subtitle,omitempty"`
	ImageURL     string  `json:"image_url" validate:"required"`
	LinkURL      *string `json:"link_url,omitempty"`
	LinkText     *string `json:"link_text,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// UpdateBannerRequest partially merges fields into an existing banner.
type UpdateBannerRequest struct {
	Title        *string `json:"title,omitempty"`
	Subtitle     *string `json:"subtitle,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	LinkURL      *string `json:"link_url,omitempty"`
	LinkText     *string `json:"link_text,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}
