// Package fixture imports a whole event (sessions, households, guests and
// questions) from a YAML document.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"

	"github.com/rsvp-planner/app/internal/database"
	"github.com/rsvp-planner/app/internal/models"
)

// ErrInvalidFixture wraps every problem found before anything is written.
var ErrInvalidFixture = errors.New("invalid fixture")

type File struct {
	Event Event `yaml:"event"`
}

type Event struct {
	Title       string      `yaml:"title"`
	Type        string      `yaml:"type"`
	Description string      `yaml:"description"`
	Start       time.Time   `yaml:"start"`
	End         time.Time   `yaml:"end"`
	Location    string      `yaml:"location"`
	Slug        string      `yaml:"slug"`
	Sessions    []Session   `yaml:"sessions"`
	Questions   []Question  `yaml:"questions"`
	Households  []Household `yaml:"households"`
}

// Session.Key is how questions in the same file refer to the session.
type Session struct {
	Key         string     `yaml:"key"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	StartsAt    time.Time  `yaml:"starts_at"`
	EndsAt      *time.Time `yaml:"ends_at"`
	Location    string     `yaml:"location"`
	DressCode   string     `yaml:"dress_code"`
	Order       int        `yaml:"order"`
}

type Question struct {
	Label       string   `yaml:"label"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	Required    bool     `yaml:"required"`
	Options     []string `yaml:"options"`
	Session     string   `yaml:"session"`
	Order       int      `yaml:"order"`
}

type Household struct {
	Name   string  `yaml:"name"`
	Notes  string  `yaml:"notes"`
	Guests []Guest `yaml:"guests"`
}

type Guest struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Role      string `yaml:"role"`
	Primary   bool   `yaml:"primary"`
}

// Load decodes a fixture, rejecting unknown keys.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	return &f, nil
}

func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Load(fh)
}

func (f *File) event(ownerID string) *models.Event {
	return &models.Event{
		UserID:          ownerID,
		Title:           f.Event.Title,
		Type:            models.EventType(f.Event.Type),
		Description:     f.Event.Description,
		StartDate:       f.Event.Start,
		EndDate:         f.Event.End,
		LocationSummary: f.Event.Location,
		Slug:            f.Event.Slug,
	}
}

// Validate checks the whole document so a bad file writes nothing.
func (f *File) Validate() error {
	if err := f.event("").Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	keys := make(map[string]bool, len(f.Event.Sessions))
	for i, s := range f.Event.Sessions {
		if s.Name == "" {
			return fmt.Errorf("%w: session %d has no name", ErrInvalidFixture, i+1)
		}
		if s.StartsAt.IsZero() {
			return fmt.Errorf("%w: session %q has no starts_at", ErrInvalidFixture, s.Name)
		}
		if s.Key != "" {
			if keys[s.Key] {
				return fmt.Errorf("%w: duplicate session key %q", ErrInvalidFixture, s.Key)
			}
			keys[s.Key] = true
		}
	}

	for _, q := range f.Event.Questions {
		qt := models.QuestionType(q.Type)
		switch {
		case q.Label == "":
			return fmt.Errorf("%w: question without a label", ErrInvalidFixture)
		case !qt.Valid():
			return fmt.Errorf("%w: question %q has unknown type %q", ErrInvalidFixture, q.Label, q.Type)
		case (qt == models.QuestionSingleChoice || qt == models.QuestionMultiChoice) && len(q.Options) == 0:
			return fmt.Errorf("%w: question %q needs options", ErrInvalidFixture, q.Label)
		case q.Session != "" && !keys[q.Session]:
			return fmt.Errorf("%w: question %q refers to unknown session %q", ErrInvalidFixture, q.Label, q.Session)
		}
	}

	for _, h := range f.Event.Households {
		if h.Name == "" {
			return fmt.Errorf("%w: household without a name", ErrInvalidFixture)
		}
		for _, g := range h.Guests {
			if g.FirstName == "" || g.LastName == "" {
				return fmt.Errorf("%w: household %q has a guest without a full name", ErrInvalidFixture, h.Name)
			}
			switch models.GuestRole(g.Role) {
			case "", models.GuestRolePrimary, models.GuestRolePlusOne, models.GuestRoleChild, models.GuestRoleOther:
			default:
				return fmt.Errorf("%w: guest %s %s has unknown role %q", ErrInvalidFixture, g.FirstName, g.LastName, g.Role)
			}
		}
	}
	return nil
}

// Result is what Apply created.
type Result struct {
	Event      *models.Event
	Sessions   []models.Session
	Questions  []models.Question
	Households []models.Household
	Guests     int
}

// Apply validates f and creates its event for ownerID.
func Apply(ctx context.Context, db *sqlx.DB, ownerID string, f *File) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	event, err := database.CreateEvent(ctx, db, f.event(ownerID))
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	res := &Result{Event: event}

	sessionIDs := make(map[string]string, len(f.Event.Sessions))
	for _, s := range f.Event.Sessions {
		created, err := database.CreateSession(ctx, db, &models.Session{
			EventID:      event.ID,
			Name:         s.Name,
			Description:  s.Description,
			StartsAt:     s.StartsAt,
			EndsAt:       s.EndsAt,
			LocationName: s.Location,
			DressCode:    s.DressCode,
			DisplayOrder: s.Order,
		})
		if err != nil {
			return nil, fmt.Errorf("create session %q: %w", s.Name, err)
		}
		if s.Key != "" {
			sessionIDs[s.Key] = created.ID
		}
		res.Sessions = append(res.Sessions, *created)
	}

	for _, q := range f.Event.Questions {
		created, err := database.CreateQuestion(ctx, db, &models.Question{
			EventID:      event.ID,
			SessionID:    sessionIDs[q.Session],
			Label:        q.Label,
			Description:  q.Description,
			Type:         models.QuestionType(q.Type),
			Required:     q.Required,
			Options:      q.Options,
			DisplayOrder: q.Order,
		})
		if err != nil {
			return nil, fmt.Errorf("create question %q: %w", q.Label, err)
		}
		res.Questions = append(res.Questions, *created)
	}

	for _, h := range f.Event.Households {
		household, err := database.CreateHousehold(ctx, db, &models.Household{
			EventID: event.ID,
			Name:    h.Name,
			Notes:   h.Notes,
		})
		if err != nil {
			return nil, fmt.Errorf("create household %q: %w", h.Name, err)
		}
		res.Households = append(res.Households, *household)

		for _, g := range h.Guests {
			_, err := database.CreateGuest(ctx, db, &models.Guest{
				EventID:          event.ID,
				HouseholdID:      household.ID,
				FirstName:        g.FirstName,
				LastName:         g.LastName,
				Email:            g.Email,
				Role:             models.GuestRole(g.Role),
				IsPrimaryContact: g.Primary,
			})
			if err != nil {
				return nil, fmt.Errorf("create guest %s %s: %w", g.FirstName, g.LastName, err)
			}
			res.Guests++
		}
	}

	return res, nil
}
