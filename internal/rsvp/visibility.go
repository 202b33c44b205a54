package rsvp

import "github.com/rsvp-planner/app/internal/models"

// IsVisible reports whether q applies to the guest given the current
// selections. Event-wide questions always apply; a session question applies
// only while the guest is attending that session. The result must be
// recomputed after every attendance change.
func IsVisible(q models.Question, guestID string, sel *Selections) bool {
	if q.SessionID == "" {
		return true
	}
	return sel.Attendance(guestID, q.SessionID) == models.RSVPStatusAttending
}
