package rsvp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rsvp-planner/app/internal/models"
)

// GenericFailureMessage is the only error text guests ever see for a failed
// submit.
const GenericFailureMessage = "There was a problem saving your RSVP. Please try again."

// ErrSubmitFailed wraps every persistence failure returned by Submit.
var ErrSubmitFailed = errors.New("rsvp submission failed")

// Writer performs the two writes of a submission.
type Writer interface {
	// UpsertAttendance inserts or overwrites records keyed on
	// (session, guest).
	UpsertAttendance(ctx context.Context, records []models.Attendance) error
	// ReplaceAnswers deletes every stored answer for guestIDs x questionIDs
	// and inserts records in their place. Answers outside that scope are
	// left alone.
	ReplaceAnswers(ctx context.Context, guestIDs, questionIDs []string, records []models.Answer) error
}

// Gateway runs fn against a Writer inside one transaction. If fn returns an
// error nothing fn wrote is kept.
type Gateway interface {
	WithinTx(ctx context.Context, fn func(Writer) error) error
}

// Form is everything shown on one household's RSVP page plus the guest's
// current selections.
type Form struct {
	Guests     []models.Guest
	Sessions   []models.Session
	Questions  []models.Question
	Selections *Selections
}

// Submitter turns a form into persisted records.
type Submitter struct {
	gateway Gateway

	// Clock overrides time.Now for responded-at stamps (for testing).
	Clock func() time.Time
}

func NewSubmitter(gateway Gateway) *Submitter {
	return &Submitter{gateway: gateway}
}

func (s *Submitter) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// Submit builds the submission and writes it in a single transaction:
// attendance first, then the answer replace over every guest and question
// on the form. A submission with no records skips the gateway entirely.
// An empty answer list with attendance present still clears stored answers
// across that scope.
// The returned Submission is valid even when err is non-nil.
func (s *Submitter) Submit(ctx context.Context, form Form) (Submission, error) {
	sub := Build(form.Guests, form.Sessions, form.Questions, form.Selections, s.now())
	if sub.Empty() {
		return sub, nil
	}

	err := s.gateway.WithinTx(ctx, func(w Writer) error {
		if len(sub.Attendance) > 0 {
			if err := w.UpsertAttendance(ctx, sub.Attendance); err != nil {
				return fmt.Errorf("upsert attendance: %w", err)
			}
		}
		if len(form.Guests) == 0 || len(form.Questions) == 0 {
			return nil
		}
		if err := w.ReplaceAnswers(ctx, guestIDs(form.Guests), questionIDs(form.Questions), sub.Answers); err != nil {
			return fmt.Errorf("replace answers: %w", err)
		}
		return nil
	})
	if err != nil {
		return sub, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	return sub, nil
}

func guestIDs(guests []models.Guest) []string {
	ids := make([]string, len(guests))
	for i, g := range guests {
		ids[i] = g.ID
	}
	return ids
}

func questionIDs(questions []models.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
