package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/geospatial-academy/training-hub-api/internal/models"
)

func newRegistrationRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRegistrationRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	reg := &models.Registration{
		FirstName:       "Ada",
		LastName:        "Okoye",
		Email:           "ada@example.com",
		Country:         "NG",
		CourseID:        "gis-fundamentals",
		ExperienceLevel: "beginner",
		AgreeTerms:      true,
		Status:          models.RegistrationStatusPending,
		RegisteredAt:    time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO registrations")).
		WithArgs(reg.FirstName, reg.LastName, reg.Email, nil, reg.Country,
			reg.CourseID, reg.ExperienceLevel, nil, reg.AgreeTerms,
			reg.Newsletter, reg.Status, reg.RegisteredAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, repo.Create(context.Background(), reg))
	require.Equal(t, int64(42), reg.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE registrations SET status = $2 WHERE id = $1")).
		WithArgs(int64(42), models.RegistrationStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateStatus(context.Background(), 42, models.RegistrationStatusConfirmed)
	require.NoError(t, err)
	require.True(t, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE registrations SET status = $2 WHERE id = $1")).
		WithArgs(int64(999), models.RegistrationStatusCancelled).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.UpdateStatus(context.Background(), 999, models.RegistrationStatusCancelled)
	require.NoError(t, err)
	require.False(t, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryListSince(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "country", "course_id", "experience_level", "goals", "agree_terms", "newsletter", "status", "registration_date"}).
		AddRow(int64(7), "Ada", "Okoye", "ada@example.com", nil, "NG", "gis-fundamentals", "beginner", nil, true, false, models.RegistrationStatusPending, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE registration_date >= $1 ORDER BY registration_date DESC, id DESC")).
		WithArgs(from).
		WillReturnRows(rows)

	regs, err := repo.ListSince(context.Background(), from)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	require.Equal(t, int64(7), regs[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryCountWithRange(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM registrations WHERE registration_date >= $1 AND registration_date <= $2")).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	total, err := repo.Count(context.Background(), models.StatsFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
