package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/geospatial-academy/training-hub-api/internal/models"
)

// CourseRepository provides database access for the course catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	const query = `INSERT INTO courses (id, title, description, level, duration, price, enrolled, image_url, details_url, active, created_at, updated_at)
VALUES (:id, :title, :description, :level, :duration, :price, :enrolled, :image_url, :details_url, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// FindByID returns a course by slug, regardless of its active flag so that
// historical registrations stay resolvable.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, title, description, level, duration, price, enrolled, image_url, details_url, active, created_at, updated_at FROM courses WHERE id = $1 LIMIT 1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// List returns courses ordered by title, optionally only active ones.
func (r *CourseRepository) List(ctx context.Context, activeOnly bool) ([]models.Course, error) {
	query := `SELECT id, title, description, level, duration, price, enrolled, image_url, details_url, active, created_at, updated_at FROM courses`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY title ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Update overwrites the mutable fields of a course. The id never changes.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET title = :title, description = :description, level = :level, duration = :duration, price = :price, enrolled = :enrolled, image_url = :image_url, details_url = :details_url, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag off, keeping the row for historical
// registration references.
func (r *CourseRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE courses SET active = FALSE, updated_at = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("soft delete course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete course: %w", err)
	}
	return affected > 0, nil
}

// IncrementEnrollment atomically adjusts the enrollment counter. A missing
// course id is reported as applied == false, not an error.
func (r *CourseRepository) IncrementEnrollment(ctx context.Context, id string, delta int) (bool, error) {
	const query = `UPDATE courses SET enrolled = enrolled + $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, delta, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("increment enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("increment enrollment: %w", err)
	}
	return affected > 0, nil
}

// CountActive returns the number of courses not soft-deleted.
func (r *CourseRepository) CountActive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM courses WHERE active = TRUE`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count active courses: %w", err)
	}
	return total, nil
}
