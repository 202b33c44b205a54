package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

type EventType string

const (
	EventTypeWedding   EventType = "wedding"
	EventTypeTrip      EventType = "trip"
	EventTypeParty     EventType = "party"
	EventTypeCorporate EventType = "corporate"
	EventTypeOther     EventType = "other"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ErrInvalidEvent is wrapped by every error returned from Event.Validate.
var ErrInvalidEvent = errors.New("invalid event")

// Event is the top-level occasion an organizer invites households to.
type Event struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"userId"`
	Title           string    `db:"title" json:"title"`
	Type            EventType `db:"type" json:"type"`
	Description     string    `db:"description" json:"description,omitempty"`
	StartDate       time.Time `db:"start_date" json:"startDate"`
	EndDate         time.Time `db:"end_date" json:"endDate"`
	LocationSummary string    `db:"location_summary" json:"locationSummary,omitempty"`
	Slug            string    `db:"slug" json:"slug"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Validate checks the fields an organizer must supply when creating an event.
func (e *Event) Validate() error {
	title := strings.TrimSpace(e.Title)
	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	case utf8.RuneCountInString(title) > 200:
		return fmt.Errorf("%w: title must be at most 200 characters", ErrInvalidEvent)
	}

	switch e.Type {
	case EventTypeWedding, EventTypeTrip, EventTypeParty, EventTypeCorporate, EventTypeOther:
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, e.Type)
	}

	if e.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidEvent)
	}
	if e.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required", ErrInvalidEvent)
	}
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidEvent)
	}

	if e.Slug == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidEvent)
	}
	if utf8.RuneCountInString(e.Slug) > 100 {
		return fmt.Errorf("%w: slug must be at most 100 characters", ErrInvalidEvent)
	}
	if !slugPattern.MatchString(e.Slug) {
		return fmt.Errorf("%w: slug must be lowercase letters, numbers, and hyphens only", ErrInvalidEvent)
	}
	return nil
}
