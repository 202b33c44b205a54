package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rsvp-planner/app/internal/models"
)

const questionColumns = `id, event_id, COALESCE(event_session_id, '') AS event_session_id, label,
	COALESCE(description, '') AS description, type, is_required, options, display_order, created_at`

func CreateQuestion(ctx context.Context, db *sqlx.DB, question *models.Question) (*models.Question, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx, db.Rebind(`
		INSERT INTO questions (id, event_id, event_session_id, label, description, type, is_required, options, display_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		id, question.EventID, nullIfEmpty(question.SessionID), question.Label, nullIfEmpty(question.Description),
		string(question.Type), question.Required, question.Options, question.DisplayOrder)
	if err != nil {
		return nil, err
	}

	created := &models.Question{}
	err = db.GetContext(ctx, created, db.Rebind("SELECT "+questionColumns+" FROM questions WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetQuestionsForEvent returns event-wide and session-scoped questions in
// display order.
func GetQuestionsForEvent(ctx context.Context, db *sqlx.DB, eventID string) ([]models.Question, error) {
	questions := []models.Question{}
	err := db.SelectContext(ctx, &questions, db.Rebind(
		"SELECT "+questionColumns+" FROM questions WHERE event_id = ? ORDER BY display_order, label"), eventID)
	if err != nil {
		return nil, err
	}
	return questions, nil
}
