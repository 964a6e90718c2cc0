package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/geospatial-academy/training-hub-api/internal/models"
)

// RegistrationRepository provides database access for course registrations.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository creates a new instance of RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a new registration and fills in the generated id.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	const query = `INSERT INTO registrations (first_name, last_name, email, phone, country, course_id, experience_level, goals, agree_terms, newsletter, status, registration_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		reg.FirstName, reg.LastName, reg.Email, reg.Phone, reg.Country,
		reg.CourseID, reg.ExperienceLevel, reg.Goals, reg.AgreeTerms,
		reg.Newsletter, reg.Status, reg.RegisteredAt,
	).Scan(&reg.ID)
	if err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// FindByID returns a registration by identifier.
func (r *RegistrationRepository) FindByID(ctx context.Context, id int64) (*models.Registration, error) {
	const query = `SELECT id, first_name, last_name, email, phone, country, course_id, experience_level, goals, agree_terms, newsletter, status, registration_date FROM registrations WHERE id = $1 LIMIT 1`
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns all registrations, newest first.
func (r *RegistrationRepository) List(ctx context.Context) ([]models.Registration, error) {
	const query = `SELECT id, first_name, last_name, email, phone, country, course_id, experience_level, goals, agree_terms, newsletter, status, registration_date FROM registrations ORDER BY registration_date DESC, id DESC`
	var regs []models.Registration
	if err := r.db.SelectContext(ctx, &regs, query); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// ListSince returns registrations recorded at or after the given instant,
// newest first. It backs the trailing-window dashboard aggregation.
func (r *RegistrationRepository) ListSince(ctx context.Context, from time.Time) ([]models.Registration, error) {
	const query = `SELECT id, first_name, last_name, email, phone, country, course_id, experience_level, goals, agree_terms, newsletter, status, registration_date FROM registrations WHERE registration_date >= $1 ORDER BY registration_date DESC, id DESC`
	var regs []models.Registration
	if err := r.db.SelectContext(ctx, &regs, query, from); err != nil {
		return nil, fmt.Errorf("list registrations since: %w", err)
	}
	return regs, nil
}

// UpdateStatus sets the lifecycle status of a registration. Reports whether a
// row was matched.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id int64, status models.RegistrationStatus) (bool, error) {
	const query = `UPDATE registrations SET status = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return false, fmt.Errorf("update registration status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update registration status: %w", err)
	}
	return affected > 0, nil
}

// Count returns the number of registrations matching the optional date filter.
func (r *RegistrationRepository) Count(ctx context.Context, filter models.StatsFilter) (int, error) {
	query := `SELECT COUNT(*) FROM registrations`
	args := []any{}
	where := ""
	if filter.From != nil {
		args = append(args, *filter.From)
		where = fmt.Sprintf(" WHERE registration_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		if where == "" {
			where = fmt.Sprintf(" WHERE registration_date <= $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND registration_date <= $%d", len(args))
		}
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query+where, args...); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return total, nil
}
