package models

import "time"

// Session is a sub-occasion of an event, e.g. ceremony or dinner.
type Session struct {
	ID           string     `db:"id" json:"id"`
	EventID      string     `db:"event_id" json:"eventId"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description,omitempty"`
	StartsAt     time.Time  `db:"start_datetime" json:"startsAt"`
	EndsAt       *time.Time `db:"end_datetime" json:"endsAt,omitempty"`
	LocationName string     `db:"location_name" json:"locationName,omitempty"`
	DressCode    string     `db:"dress_code" json:"dressCode,omitempty"`
	DisplayOrder int        `db:"display_order" json:"displayOrder"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}
