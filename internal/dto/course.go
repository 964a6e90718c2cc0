package dto

// CreateCourseRequest creates a catalog entry. ID is optional; when omitted a
// slug is derived from the title.
type CreateCourseRequest struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Level       string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced Specialized Professional"`
	Duration    string  `json:"duration" validate:"required"`
	Price       string  `json:"price" validate:"required"`
	Enrolled    *int    `json:"enrolled,omitempty" validate:"omitempty,gte=0"`
	ImageURL    *string `json:"image_url,omitempty"`
	DetailsURL  *string `json:"details_url,omitempty" validate:"omitempty,url"`
}

// UpdateCourseRequest partially merges fields into an existing course. The ID
// is immutable and not part of the payload.
type UpdateCourseRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Level       *string `json:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced Specialized Professional"`
	Duration    *string `json:"duration,omitempty"`
	Price       *string `json:"price,omitempty"`
	Enrolled    *int    `json:"enrolled,omitempty" validate:"omitempty,gte=0"`
	ImageURL    *string `json:"image_url,omitempty"`
	DetailsURL  *string `json:"details_url,omitempty" validate:"omitempty,url"`
	Active      *bool   `json:"active,omitempty"`
}
