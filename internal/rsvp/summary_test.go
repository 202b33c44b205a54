package rsvp

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/rsvp-planner/app/internal/models"
)

func summaryFixture() ([]models.Guest, []models.Session, []models.Attendance) {
	guests := []models.Guest{
		{ID: "g1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: models.GuestRolePrimary},
		{ID: "g2", FirstName: "Charles", LastName: "Babbage", Role: models.GuestRolePlusOne},
		{ID: "g3", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Role: models.GuestRolePrimary},
	}
	sessions := []models.Session{{ID: "s1", Name: "Ceremony"}, {ID: "s2", Name: "Dinner"}}
	attendance := []models.Attendance{
		{GuestID: "g1", SessionID: "s1", Status: models.RSVPStatusAttending},
		{GuestID: "g1", SessionID: "s2", Status: models.RSVPStatusNotAttending},
		{GuestID: "g2", SessionID: "s1", Status: models.RSVPStatusNotAttending},
		{GuestID: "g2", SessionID: "s2", Status: models.RSVPStatusNotAttending},
	}
	return guests, sessions, attendance
}

func TestSummarizeCounts(t *testing.T) {
	sum := Summarize(summaryFixture())

	assert.Equal(t, 3, sum.TotalGuests)
	assert.Equal(t, 1, sum.Attending)
	assert.Equal(t, 1, sum.Declined)
	assert.Equal(t, 1, sum.Pending)
	assert.Equal(t, 2, sum.Sessions[1].NotAttending)
	assert.Equal(t, []models.RSVPStatus{models.RSVPStatusNoResponse, models.RSVPStatusNoResponse}, sum.Guests[2].Statuses)
}

func TestSummarizeMaybeIsPending(t *testing.T) {
	guests := []models.Guest{{ID: "g"}}
	sessions := []models.Session{{ID: "s1"}, {ID: "s2"}}
	sum := Summarize(guests, sessions, []models.Attendance{
		{GuestID: "g", SessionID: "s1", Status: models.RSVPStatusNotAttending},
		{GuestID: "g", SessionID: "s2", Status: models.RSVPStatusMaybe},
	})

	assert.Zero(t, sum.Attending)
	assert.Zero(t, sum.Declined)
	assert.Equal(t, 1, sum.Pending)
}

func TestSummarizeNoGuests(t *testing.T) {
	sum := Summarize(nil, []models.Session{{ID: "s1"}}, nil)
	assert.Zero(t, sum.TotalGuests)
	assert.Zero(t, sum.Pending)
	assert.NotNil(t, sum.Guests)
}

func TestSummarizeGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.AssertJson(t, "summary", Summarize(summaryFixture()))
}
