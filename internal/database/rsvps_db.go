package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rsvp-planner/app/internal/models"
	"github.com/rsvp-planner/app/internal/rsvp"
)

const upsertAttendanceSQL = `
	INSERT INTO rsvps (id, event_session_id, guest_id, status, responded_at, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT (event_session_id, guest_id) DO UPDATE SET
		status = excluded.status,
		responded_at = excluded.responded_at,
		updated_at = CURRENT_TIMESTAMP
`

const insertAnswerSQL = `
	INSERT INTO answers (id, question_id, guest_id, event_session_id, answer_text, answer_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
`

// GetAttendanceForGuests returns every stored attendance record for the
// given guests.
func GetAttendanceForGuests(ctx context.Context, db *sqlx.DB, guestIDs []string) ([]models.Attendance, error) {
	records := []models.Attendance{}
	if len(guestIDs) == 0 {
		return records, nil
	}

	query, args, err := sqlx.In(`
		SELECT guest_id, event_session_id, status, responded_at
		FROM rsvps
		WHERE guest_id IN (?)
	`, guestIDs)
	if err != nil {
		return nil, err
	}
	if err = db.SelectContext(ctx, &records, db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return records, nil
}

// GetAttendanceForEvent returns attendance across all sessions of an event.
func GetAttendanceForEvent(ctx context.Context, db *sqlx.DB, eventID string) ([]models.Attendance, error) {
	records := []models.Attendance{}
	err := db.SelectContext(ctx, &records, db.Rebind(`
		SELECT r.guest_id, r.event_session_id, r.status, r.responded_at
		FROM rsvps r
		JOIN event_sessions s ON s.id = r.event_session_id
		WHERE s.event_id = ?
		ORDER BY r.responded_at DESC
	`), eventID)
	if err != nil {
		return nil, err
	}
	return records, nil
}

type answerRow struct {
	GuestID    string              `db:"guest_id"`
	QuestionID string              `db:"question_id"`
	SessionID  string              `db:"event_session_id"`
	Type       models.QuestionType `db:"type"`
	Text       sql.NullString      `db:"answer_text"`
	JSON       sql.NullString      `db:"answer_json"`
}

// GetAnswersForGuests returns the stored answers of the given guests,
// decoded by their question's type.
func GetAnswersForGuests(ctx context.Context, db *sqlx.DB, guestIDs []string) ([]models.Answer, error) {
	answers := []models.Answer{}
	if len(guestIDs) == 0 {
		return answers, nil
	}

	query, args, err := sqlx.In(`
		SELECT a.guest_id, a.question_id, COALESCE(a.event_session_id, '') AS event_session_id,
			q.type, a.answer_text, a.answer_json
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.guest_id IN (?)
	`, guestIDs)
	if err != nil {
		return nil, err
	}

	var rows []answerRow
	if err = db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		var text *string
		if row.Text.Valid {
			text = &row.Text.String
		}
		var structured []byte
		if row.JSON.Valid {
			structured = []byte(row.JSON.String)
		}
		value, err := models.DecodeAnswer(row.Type, text, structured)
		if err != nil {
			return nil, fmt.Errorf("answer %s/%s: %w", row.GuestID, row.QuestionID, err)
		}
		answers = append(answers, models.Answer{
			GuestID:    row.GuestID,
			QuestionID: row.QuestionID,
			SessionID:  row.SessionID,
			Value:      value,
		})
	}
	return answers, nil
}

// ResponseGateway persists RSVP submissions. It implements rsvp.Gateway.
type ResponseGateway struct {
	db *sqlx.DB
}

func NewResponseGateway(db *sqlx.DB) *ResponseGateway {
	return &ResponseGateway{db: db}
}

// WithinTx runs fn in a transaction, committing only if fn succeeds.
func (g *ResponseGateway) WithinTx(ctx context.Context, fn func(rsvp.Writer) error) error {
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&responseWriter{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type responseWriter struct {
	tx *sqlx.Tx
}

func (w *responseWriter) UpsertAttendance(ctx context.Context, records []models.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := w.tx.PreparexContext(ctx, w.tx.Rebind(upsertAttendanceSQL))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx, uuid.NewString(), r.SessionID, r.GuestID, string(r.Status), r.RespondedAt)
		if err != nil {
			return fmt.Errorf("guest %s session %s: %w", r.GuestID, r.SessionID, err)
		}
	}
	return nil
}

func (w *responseWriter) ReplaceAnswers(ctx context.Context, guestIDs, questionIDs []string, records []models.Answer) error {
	if len(guestIDs) == 0 || len(questionIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM answers WHERE guest_id IN (?) AND question_id IN (?)`, guestIDs, questionIDs)
	if err != nil {
		return err
	}
	if _, err = w.tx.ExecContext(ctx, w.tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("clear answers: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	stmt, err := w.tx.PreparexContext(ctx, w.tx.Rebind(insertAnswerSQL))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range records {
		text, structured, err := a.Value.Encode()
		if err != nil {
			return err
		}
		var textArg, jsonArg any
		if text != nil {
			textArg = *text
		}
		if structured != nil {
			jsonArg = string(structured)
		}
		_, err = stmt.ExecContext(ctx, uuid.NewString(), a.QuestionID, a.GuestID, nullIfEmpty(a.SessionID), textArg, jsonArg)
		if err != nil {
			return fmt.Errorf("guest %s question %s: %w", a.GuestID, a.QuestionID, err)
		}
	}
	return nil
}
