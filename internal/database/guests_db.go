package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rsvp-planner/app/internal/models"
)

const guestColumns = `id, event_id, COALESCE(household_id, '') AS household_id, first_name, last_name,
	COALESCE(email, '') AS email, role, is_primary_contact, created_at`

// CreateGuest inserts a guest. An empty role is stored as primary.
func CreateGuest(ctx context.Context, db *sqlx.DB, guest *models.Guest) (*models.Guest, error) {
	role := guest.Role
	if role == "" {
		role = models.GuestRolePrimary
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx, db.Rebind(`
		INSERT INTO guests (id, event_id, household_id, first_name, last_name, email, role, is_primary_contact)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`),
		id, guest.EventID, nullIfEmpty(guest.HouseholdID), guest.FirstName, guest.LastName,
		nullIfEmpty(guest.Email), string(role), guest.IsPrimaryContact)
	if err != nil {
		return nil, err
	}

	created := &models.Guest{}
	err = db.GetContext(ctx, created, db.Rebind("SELECT "+guestColumns+" FROM guests WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetGuestsForHousehold lists the primary contact first, then the rest by
// name.
func GetGuestsForHousehold(ctx context.Context, db *sqlx.DB, householdID string) ([]models.Guest, error) {
	guests := []models.Guest{}
	err := db.SelectContext(ctx, &guests, db.Rebind(
		"SELECT "+guestColumns+" FROM guests WHERE household_id = ? ORDER BY is_primary_contact DESC, last_name, first_name"),
		householdID)
	if err != nil {
		return nil, err
	}
	return guests, nil
}

func GetGuestsForEvent(ctx context.Context, db *sqlx.DB, eventID string) ([]models.Guest, error) {
	guests := []models.Guest{}
	err := db.SelectContext(ctx, &guests, db.Rebind(
		"SELECT "+guestColumns+" FROM guests WHERE event_id = ? ORDER BY last_name, first_name"), eventID)
	if err != nil {
		return nil, err
	}
	return guests, nil
}
