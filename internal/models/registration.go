package models

import "time"

// RegistrationStatus is the lifecycle state of a registration. Transitions are
// unconstrained: any status may be set over any other.
type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusConfirmed, RegistrationStatusCancelled:
		return true
	}
	return false
}

// Registration is a student's submitted course application. CourseID is a
// non-owning reference: the course may have been deleted since, and every
// consumer must tolerate the lookup miss.
type Registration struct {
	ID              int64              `db:"id" json:"id"`
	FirstName       string             `db:"first_name" json:"first_name"`
	LastName        string             `db:"last_name" json:"last_name"`
	Email           string             `db:"email" json:"email"`
	Phone           *string            `db:"phone" json:"phone,omitempty"`
	Country         string             `db:"country" json:"country"`
	CourseID        string             `db:"course_id" json:"course_id"`
	ExperienceLevel string             `db:"experience_level" json:"experience_level"`
	Goals           *string            `db:"goals" json:"goals,omitempty"`
	AgreeTerms      bool               `db:"agree_terms" json:"agree_terms"`
	Newsletter      bool               `db:"newsletter" json:"newsletter"`
	Status          RegistrationStatus `db:"status" json:"status"`
	RegisteredAt    time.Time          `db:"registration_date" json:"registration_date"`
}

// StatsFilter optionally bounds the registration set considered for totals.
type StatsFilter struct {
	From *time.Time
	To   *time.Time
}
