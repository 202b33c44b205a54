package database

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rsvp-planner/app/internal/models"
)

// accessCodeAlphabet omits characters that are easy to misread (I, O, 0, 1).
// Its length divides 256, so byte%len is unbiased.
const accessCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const accessCodeLength = 6

const householdColumns = `id, event_id, name, access_code, rsvp_token, COALESCE(notes, '') AS notes, created_at`

func newAccessCode() (string, error) {
	buf := make([]byte, accessCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access code: %w", err)
	}
	for i, b := range buf {
		buf[i] = accessCodeAlphabet[int(b)%len(accessCodeAlphabet)]
	}
	return string(buf), nil
}

// newRSVPToken returns 32 lowercase hex characters.
func newRSVPToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateHousehold inserts a household and issues its RSVP token and access
// code. Any token or code already set on household is ignored.
func CreateHousehold(ctx context.Context, db *sqlx.DB, household *models.Household) (*models.Household, error) {
	code, err := newAccessCode()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx, db.Rebind(`
		INSERT INTO households (id, event_id, name, access_code, rsvp_token, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`), id, household.EventID, household.Name, code, newRSVPToken(), nullIfEmpty(household.Notes))
	if err != nil {
		return nil, err
	}

	created := &models.Household{}
	err = db.GetContext(ctx, created, db.Rebind("SELECT "+householdColumns+" FROM households WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetHouseholdByToken resolves a guest RSVP link.
func GetHouseholdByToken(ctx context.Context, db *sqlx.DB, token string) (*models.Household, error) {
	household := &models.Household{}
	err := db.GetContext(ctx, household, db.Rebind("SELECT "+householdColumns+" FROM households WHERE rsvp_token = ?"), token)
	if err != nil {
		return nil, notFound(err)
	}
	return household, nil
}

func GetHouseholdsForEvent(ctx context.Context, db *sqlx.DB, eventID string) ([]models.Household, error) {
	households := []models.Household{}
	err := db.SelectContext(ctx, &households, db.Rebind(
		"SELECT "+householdColumns+" FROM households WHERE event_id = ? ORDER BY name"), eventID)
	if err != nil {
		return nil, err
	}
	return households, nil
}
