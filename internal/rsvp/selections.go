package rsvp

import "github.com/rsvp-planner/app/internal/models"

type attendanceKey struct {
	guestID   string
	sessionID string
}

type answerKey struct {
	guestID    string
	questionID string
}

// Selections is the working state of one household's RSVP form. It is
// seeded once from persisted records and then overwritten freely; every
// write replaces the previous value for its key.
type Selections struct {
	attendance map[attendanceKey]models.RSVPStatus
	answers    map[answerKey]models.AnswerValue
}

// NewSelections seeds the store from previously saved records.
func NewSelections(attendance []models.Attendance, answers []models.Answer) *Selections {
	s := &Selections{
		attendance: make(map[attendanceKey]models.RSVPStatus, len(attendance)),
		answers:    make(map[answerKey]models.AnswerValue, len(answers)),
	}
	for _, a := range attendance {
		s.SetAttendance(a.GuestID, a.SessionID, a.Status)
	}
	for _, a := range answers {
		s.SetAnswer(a.GuestID, a.QuestionID, a.Value)
	}
	return s
}

func (s *Selections) SetAttendance(guestID, sessionID string, status models.RSVPStatus) {
	s.attendance[attendanceKey{guestID, sessionID}] = status
}

func (s *Selections) SetAnswer(guestID, questionID string, value models.AnswerValue) {
	s.answers[answerKey{guestID, questionID}] = value
}

// Attendance returns RSVPStatusUnset when nothing was selected.
func (s *Selections) Attendance(guestID, sessionID string) models.RSVPStatus {
	return s.attendance[attendanceKey{guestID, sessionID}]
}

func (s *Selections) Answer(guestID, questionID string) (models.AnswerValue, bool) {
	v, ok := s.answers[answerKey{guestID, questionID}]
	return v, ok
}
