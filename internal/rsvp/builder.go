package rsvp

import (
	"time"

	"github.com/rsvp-planner/app/internal/models"
)

// Submission is the set of records produced from one form submit.
type Submission struct {
	Attendance []models.Attendance
	Answers    []models.Answer

	// Dropped lists answers still held in the selections whose question is
	// hidden for the guest. They are never written.
	Dropped []models.Answer
}

// Empty reports whether there is nothing to write.
func (s Submission) Empty() bool {
	return len(s.Attendance) == 0 && len(s.Answers) == 0
}

// Build walks every guest against every session and question and returns
// the records to persist. Records follow input order. Unanswered pairs are
// omitted; partial responses are fine.
func Build(guests []models.Guest, sessions []models.Session, questions []models.Question, sel *Selections, now time.Time) Submission {
	var sub Submission

	for _, g := range guests {
		for _, s := range sessions {
			status := sel.Attendance(g.ID, s.ID)
			if status == models.RSVPStatusUnset {
				continue
			}
			sub.Attendance = append(sub.Attendance, models.Attendance{
				GuestID:     g.ID,
				SessionID:   s.ID,
				Status:      status,
				RespondedAt: now,
			})
		}
	}

	for _, g := range guests {
		for _, q := range questions {
			value, ok := sel.Answer(g.ID, q.ID)
			if !ok || value.IsEmpty() {
				continue
			}
			answer := models.Answer{
				GuestID:    g.ID,
				QuestionID: q.ID,
				SessionID:  q.SessionID,
				Value:      value,
			}
			if !IsVisible(q, g.ID, sel) {
				sub.Dropped = append(sub.Dropped, answer)
				continue
			}
			sub.Answers = append(sub.Answers, answer)
		}
	}

	return sub
}
