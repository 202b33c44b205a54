package models

import "time"

// Household groups guests who share one RSVP link.
type Household struct {
	ID         string    `db:"id" json:"id"`
	EventID    string    `db:"event_id" json:"eventId"`
	Name       string    `db:"name" json:"name"`
	AccessCode string    `db:"access_code" json:"accessCode"`
	RSVPToken  string    `db:"rsvp_token" json:"rsvpToken"`
	Notes      string    `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
