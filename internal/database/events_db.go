package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rsvp-planner/app/internal/models"
)

const eventColumns = `id, user_id, title, type, COALESCE(description, '') AS description,
	start_date, end_date, COALESCE(location_summary, '') AS location_summary,
	slug, created_at, updated_at`

// CreateEvent inserts a new event owned by event.UserID.
func CreateEvent(ctx context.Context, db *sqlx.DB, event *models.Event) (*models.Event, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx, db.Rebind(`
		INSERT INTO events (id, user_id, title, type, description, start_date, end_date, location_summary, slug, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`),
		id, event.UserID, event.Title, string(event.Type), nullIfEmpty(event.Description),
		event.StartDate, event.EndDate, nullIfEmpty(event.LocationSummary), event.Slug)
	if err != nil {
		return nil, err
	}
	return GetEventByID(ctx, db, id)
}

func GetEventByID(ctx context.Context, db *sqlx.DB, id string) (*models.Event, error) {
	event := &models.Event{}
	err := db.GetContext(ctx, event, db.Rebind("SELECT "+eventColumns+" FROM events WHERE id = ?"), id)
	if err != nil {
		return nil, notFound(err)
	}
	return event, nil
}

// GetEventBySlug returns ErrNotFound when no event uses slug.
func GetEventBySlug(ctx context.Context, db *sqlx.DB, slug string) (*models.Event, error) {
	event := &models.Event{}
	err := db.GetContext(ctx, event, db.Rebind("SELECT "+eventColumns+" FROM events WHERE slug = ?"), slug)
	if err != nil {
		return nil, notFound(err)
	}
	return event, nil
}

// GetEventsForUser lists the events a user organizes, newest start first.
func GetEventsForUser(ctx context.Context, db *sqlx.DB, userID string) ([]models.Event, error) {
	events := []models.Event{}
	err := db.SelectContext(ctx, &events, db.Rebind(
		"SELECT "+eventColumns+" FROM events WHERE user_id = ? ORDER BY start_date DESC, title"), userID)
	if err != nil {
		return nil, err
	}
	return events, nil
}
