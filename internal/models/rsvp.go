package models

import (
	"fmt"
	"time"
)

type RSVPStatus string

const (
	// RSVPStatusUnset means the guest has not picked anything for a session.
	RSVPStatusUnset        RSVPStatus = ""
	RSVPStatusAttending    RSVPStatus = "attending"
	RSVPStatusNotAttending RSVPStatus = "not_attending"
	RSVPStatusMaybe        RSVPStatus = "maybe"
	RSVPStatusNoResponse   RSVPStatus = "no_response"
)

// ParseRSVPStatus accepts the persisted status values and the empty string.
func ParseRSVPStatus(s string) (RSVPStatus, error) {
	switch status := RSVPStatus(s); status {
	case RSVPStatusUnset, RSVPStatusAttending, RSVPStatusNotAttending, RSVPStatusMaybe, RSVPStatusNoResponse:
		return status, nil
	}
	return RSVPStatusUnset, fmt.Errorf("invalid RSVP status %q", s)
}

// Attendance is one guest's response for one session. It is unique per
// (SessionID, GuestID).
type Attendance struct {
	GuestID     string     `db:"guest_id" json:"guestId"`
	SessionID   string     `db:"event_session_id" json:"sessionId"`
	Status      RSVPStatus `db:"status" json:"status"`
	RespondedAt time.Time  `db:"responded_at" json:"respondedAt"`
}

// Answer is one guest's answer to one question. SessionID mirrors the
// question's owning session and is empty for event-wide questions.
type Answer struct {
	GuestID    string      `json:"guestId"`
	QuestionID string      `json:"questionId"`
	SessionID  string      `json:"sessionId,omitempty"`
	Value      AnswerValue `json:"value"`
}
