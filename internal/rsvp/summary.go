package rsvp

import "github.com/rsvp-planner/app/internal/models"

// Summary is the organizer's aggregate view of an event's responses.
type Summary struct {
	TotalGuests int              `json:"totalGuests"`
	Attending   int              `json:"attending"`
	Declined    int              `json:"declined"`
	Pending     int              `json:"pending"`
	Sessions    []SessionSummary `json:"sessions"`
	Guests      []GuestRow       `json:"guests"`
}

type SessionSummary struct {
	SessionID    string `json:"sessionId"`
	Name         string `json:"name"`
	Attending    int    `json:"attending"`
	NotAttending int    `json:"notAttending"`
	Maybe        int    `json:"maybe"`
	NoResponse   int    `json:"noResponse"`
}

// GuestRow holds one guest's status per session, in the same order as
// Summary.Sessions.
type GuestRow struct {
	GuestID  string              `json:"guestId"`
	Name     string              `json:"name"`
	Email    string              `json:"email,omitempty"`
	Role     models.GuestRole    `json:"role"`
	Statuses []models.RSVPStatus `json:"statuses"`
}

// Summarize counts a guest as attending when any session is attending and
// as declined when every recorded session is not_attending. Everyone else
// is pending. Sessions without a record count as no_response.
func Summarize(guests []models.Guest, sessions []models.Session, attendance []models.Attendance) Summary {
	byGuest := make(map[string]map[string]models.RSVPStatus, len(guests))
	for _, a := range attendance {
		m, ok := byGuest[a.GuestID]
		if !ok {
			m = make(map[string]models.RSVPStatus)
			byGuest[a.GuestID] = m
		}
		m[a.SessionID] = a.Status
	}

	sum := Summary{
		TotalGuests: len(guests),
		Sessions:    make([]SessionSummary, len(sessions)),
		Guests:      make([]GuestRow, 0, len(guests)),
	}
	for i, s := range sessions {
		sum.Sessions[i] = SessionSummary{SessionID: s.ID, Name: s.Name}
	}

	for _, g := range guests {
		row := GuestRow{
			GuestID:  g.ID,
			Name:     g.FullName(),
			Email:    g.Email,
			Role:     g.Role,
			Statuses: make([]models.RSVPStatus, len(sessions)),
		}

		recorded, attending, declinedAll := 0, false, true
		for i, s := range sessions {
			status, ok := byGuest[g.ID][s.ID]
			if !ok || status == models.RSVPStatusUnset {
				status = models.RSVPStatusNoResponse
			} else {
				recorded++
			}
			row.Statuses[i] = status

			switch status {
			case models.RSVPStatusAttending:
				sum.Sessions[i].Attending++
				attending = true
			case models.RSVPStatusNotAttending:
				sum.Sessions[i].NotAttending++
			case models.RSVPStatusMaybe:
				sum.Sessions[i].Maybe++
			default:
				sum.Sessions[i].NoResponse++
			}
			if ok && status != models.RSVPStatusNotAttending {
				declinedAll = false
			}
		}

		switch {
		case attending:
			sum.Attending++
		case recorded > 0 && declinedAll:
			sum.Declined++
		}
		sum.Guests = append(sum.Guests, row)
	}

	sum.Pending = sum.TotalGuests - sum.Attending - sum.Declined
	return sum
}
