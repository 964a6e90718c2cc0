package models

import "time"

// CourseLevel enumerates the fixed difficulty tiers shown on the site.
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "Beginner"
	CourseLevelIntermediate CourseLevel = "Intermediate"
	CourseLevelAdvanced     CourseLevel = "Advanced"
	CourseLevelSpecialized  CourseLevel = "Specialized"
	CourseLevelProfessional CourseLevel = "Professional"
)

// Course is a catalog entry. The ID is a URL-safe slug, either supplied by
// the admin or derived from the title. Price is kept as the exact fixed-point
// string stored in the numeric column. Active is the soft-delete marker:
// deactivated courses stay resolvable by ID for historical registrations.
type Course struct {
	ID          string      `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Level       CourseLevel `db:"level" json:"level"`
	Duration    string      `db:"duration" json:"duration"`
	Price       string      `db:"price" json:"price"`
	Enrolled    int         `db:"enrolled" json:"enrolled"`
	ImageURL    *string     `db:"image_url" json:"image_url,omitempty"`
	DetailsURL  *string     `db:"details_url" json:"details_url,omitempty"`
	Active      bool        `db:"active" json:"active"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}
