package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rsvp-planner/app/internal/models"
)

const sessionColumns = `id, event_id, name, COALESCE(description, '') AS description,
	start_datetime, end_datetime, COALESCE(location_name, '') AS location_name,
	COALESCE(dress_code, '') AS dress_code, display_order, created_at`

func CreateSession(ctx context.Context, db *sqlx.DB, session *models.Session) (*models.Session, error) {
	var endsAt any
	if session.EndsAt != nil {
		endsAt = *session.EndsAt
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx, db.Rebind(`
		INSERT INTO event_sessions (id, event_id, name, description, start_datetime, end_datetime, location_name, dress_code, display_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		id, session.EventID, session.Name, nullIfEmpty(session.Description), session.StartsAt,
		endsAt, nullIfEmpty(session.LocationName), nullIfEmpty(session.DressCode), session.DisplayOrder)
	if err != nil {
		return nil, err
	}

	created := &models.Session{}
	err = db.GetContext(ctx, created, db.Rebind("SELECT "+sessionColumns+" FROM event_sessions WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetSessionsForEvent returns sessions in chronological order.
func GetSessionsForEvent(ctx context.Context, db *sqlx.DB, eventID string) ([]models.Session, error) {
	sessions := []models.Session{}
	err := db.SelectContext(ctx, &sessions, db.Rebind(
		"SELECT "+sessionColumns+" FROM event_sessions WHERE event_id = ? ORDER BY start_datetime, display_order, name"), eventID)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
