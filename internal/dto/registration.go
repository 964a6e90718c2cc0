package dto

// CreateRegistrationRequest is the public registration payload. Status and
// timestamps are never accepted from the caller.
type CreateRegistrationRequest struct {
	FirstName       string  `json:"first_name" validate:"required"`
	LastName        string  `json:"last_name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone,omitempty"`
	Country         string  `json:"country" validate:"required"`
	CourseID        string  `json:"course_id" validate:"required"`
	ExperienceLevel string  `json:"experience_level" validate:"required"`
	Goals           *string `json:"goals,omitempty"`
	AgreeTerms      bool    `json:"agree_terms"`
	Newsletter      bool    `json:"newsletter"`
}

// UpdateRegistrationStatusRequest changes a registration's lifecycle status.
type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
