package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/geospatial-academy/training-hub-api/internal/models"
)

// ContactRepository provides database access for contact form messages.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new instance of ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a new contact message and fills in the generated id.
func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	const query = `INSERT INTO contact_messages (name, email, subject, message, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

// List returns all contact messages, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	const query = `SELECT id, name, email, subject, message, created_at FROM contact_messages ORDER BY created_at DESC, id DESC`
	var msgs []models.ContactMessage
	if err := r.db.SelectContext(ctx, &msgs, query); err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}
