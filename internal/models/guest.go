package models

import (
	"strings"
	"time"
)

type GuestRole string

const (
	GuestRolePrimary GuestRole = "primary"
	GuestRolePlusOne GuestRole = "plus_one"
	GuestRoleChild   GuestRole = "child"
	GuestRoleOther   GuestRole = "other"
)

// Guest is a single invitee. HouseholdID is empty for guests not yet
// assigned to a household.
type Guest struct {
	ID               string    `db:"id" json:"id"`
	EventID          string    `db:"event_id" json:"eventId"`
	HouseholdID      string    `db:"household_id" json:"householdId,omitempty"`
	FirstName        string    `db:"first_name" json:"firstName"`
	LastName         string    `db:"last_name" json:"lastName"`
	Email            string    `db:"email" json:"email,omitempty"`
	Role             GuestRole `db:"role" json:"role"`
	IsPrimaryContact bool      `db:"is_primary_contact" json:"isPrimaryContact"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// FullName joins first and last name.
func (g Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}
