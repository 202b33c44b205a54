package rsvp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rsvp-planner/app/internal/models"
)

var submittedAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// twoSessionForm is guest G invited to S1 (no questions) and S2, which owns
// the required text question Q1.
func twoSessionForm() ([]models.Guest, []models.Session, []models.Question) {
	guests := []models.Guest{{ID: "G", FirstName: "Ada", LastName: "Lovelace"}}
	sessions := []models.Session{{ID: "S1", Name: "Ceremony"}, {ID: "S2", Name: "Dinner"}}
	questions := []models.Question{{ID: "Q1", SessionID: "S2", Label: "Meal", Type: models.QuestionText, Required: true}}
	return guests, sessions, questions
}

func TestIsVisibleEventWideQuestion(t *testing.T) {
	q := models.Question{ID: "Q", Type: models.QuestionBoolean}
	sel := NewSelections(nil, nil)
	assert.True(t, IsVisible(q, "G", sel))

	sel.SetAttendance("G", "S1", models.RSVPStatusNotAttending)
	assert.True(t, IsVisible(q, "G", sel))
	assert.True(t, IsVisible(q, "someone-else", sel))
}

func TestIsVisibleSessionQuestion(t *testing.T) {
	q := models.Question{ID: "Q", SessionID: "S"}
	sel := NewSelections(nil, nil)

	for _, tt := range []struct {
		status models.RSVPStatus
		want   bool
	}{
		{models.RSVPStatusUnset, false},
		{models.RSVPStatusAttending, true},
		{models.RSVPStatusMaybe, false},
		{models.RSVPStatusNotAttending, false},
		{models.RSVPStatusNoResponse, false},
	} {
		sel.SetAttendance("G", "S", tt.status)
		assert.Equal(t, tt.want, IsVisible(q, "G", sel), "status %q", tt.status)
	}

	sel.SetAttendance("G", "S", models.RSVPStatusAttending)
	assert.False(t, IsVisible(q, "H", sel), "attendance of one guest must not reveal questions to another")
}

func TestSelectionsLastWriteWins(t *testing.T) {
	sel := NewSelections(
		[]models.Attendance{{GuestID: "G", SessionID: "S", Status: models.RSVPStatusMaybe}},
		[]models.Answer{{GuestID: "G", QuestionID: "Q", Value: models.TextAnswer("Fish")}},
	)
	assert.Equal(t, models.RSVPStatusMaybe, sel.Attendance("G", "S"))

	sel.SetAttendance("G", "S", models.RSVPStatusAttending)
	sel.SetAttendance("G", "S", models.RSVPStatusNotAttending)
	assert.Equal(t, models.RSVPStatusNotAttending, sel.Attendance("G", "S"))

	sel.SetAnswer("G", "Q", models.TextAnswer("Beef"))
	v, ok := sel.Answer("G", "Q")
	assert.True(t, ok)
	assert.Equal(t, "Beef", v.Text)

	_, ok = sel.Answer("G", "other")
	assert.False(t, ok)
	assert.Equal(t, models.RSVPStatusUnset, sel.Attendance("H", "S"))
}

func TestBuildScenarioNotAttendingHidesQuestion(t *testing.T) {
	guests, sessions, questions := twoSessionForm()
	sel := NewSelections(nil, nil)
	sel.SetAttendance("G", "S1", models.RSVPStatusAttending)
	sel.SetAttendance("G", "S2", models.RSVPStatusNotAttending)

	sub := Build(guests, sessions, questions, sel, submittedAt)

	assert.Equal(t, []models.Attendance{
		{GuestID: "G", SessionID: "S1", Status: models.RSVPStatusAttending, RespondedAt: submittedAt},
		{GuestID: "G", SessionID: "S2", Status: models.RSVPStatusNotAttending, RespondedAt: submittedAt},
	}, sub.Attendance)
	assert.Empty(t, sub.Answers)
	assert.Empty(t, sub.Dropped)
}

func TestBuildScenarioAttendingAnswers(t *testing.T) {
	guests, sessions, questions := twoSessionForm()
	sel := NewSelections(nil, nil)
	sel.SetAttendance("G", "S1", models.RSVPStatusAttending)
	sel.SetAttendance("G", "S2", models.RSVPStatusAttending)
	sel.SetAnswer("G", "Q1", models.TextAnswer("Vegetarian"))

	sub := Build(guests, sessions, questions, sel, submittedAt)

	assert.Len(t, sub.Attendance, 2)
	assert.Equal(t, models.RSVPStatusAttending, sub.Attendance[1].Status)
	assert.Equal(t, []models.Answer{
		{GuestID: "G", QuestionID: "Q1", SessionID: "S2", Value: models.TextAnswer("Vegetarian")},
	}, sub.Answers)
}

func TestBuildScenarioDowngradeDropsAnswer(t *testing.T) {
	guests, sessions, questions := twoSessionForm()
	sel := NewSelections(nil, nil)
	sel.SetAttendance("G", "S1", models.RSVPStatusAttending)
	sel.SetAttendance("G", "S2", models.RSVPStatusAttending)
	sel.SetAnswer("G", "Q1", models.TextAnswer("Vegetarian"))
	sel.SetAttendance("G", "S2", models.RSVPStatusNotAttending)

	sub := Build(guests, sessions, questions, sel, submittedAt)

	assert.Equal(t, []models.Attendance{
		{GuestID: "G", SessionID: "S1", Status: models.RSVPStatusAttending, RespondedAt: submittedAt},
		{GuestID: "G", SessionID: "S2", Status: models.RSVPStatusNotAttending, RespondedAt: submittedAt},
	}, sub.Attendance)
	assert.Empty(t, sub.Answers)
	assert.Equal(t, []models.Answer{
		{GuestID: "G", QuestionID: "Q1", SessionID: "S2", Value: models.TextAnswer("Vegetarian")},
	}, sub.Dropped)

	v, ok := sel.Answer("G", "Q1")
	assert.True(t, ok, "the typed answer stays in the selections")
	assert.Equal(t, "Vegetarian", v.Text)
}

func TestBuildScenarioNothingSelected(t *testing.T) {
	guests, sessions, questions := twoSessionForm()
	sub := Build(guests, sessions, questions, NewSelections(nil, nil), submittedAt)

	assert.Empty(t, sub.Attendance)
	assert.Empty(t, sub.Answers)
	assert.True(t, sub.Empty())
}

func TestBuildSkipsEmptyAnswers(t *testing.T) {
	guests := []models.Guest{{ID: "G"}}
	questions := []models.Question{
		{ID: "Q1", Type: models.QuestionText},
		{ID: "Q2", Type: models.QuestionNumber},
		{ID: "Q3", Type: models.QuestionBoolean},
	}
	sel := NewSelections(nil, nil)
	sel.SetAnswer("G", "Q1", models.TextAnswer("  "))
	sel.SetAnswer("G", "Q2", models.AnswerValue{Type: models.QuestionNumber})
	sel.SetAnswer("G", "Q3", models.BoolAnswer(false))

	sub := Build(guests, nil, questions, sel, submittedAt)

	assert.Equal(t, []models.Answer{{GuestID: "G", QuestionID: "Q3", Value: models.BoolAnswer(false)}}, sub.Answers)
}

func TestBuildIsIdempotent(t *testing.T) {
	guests := []models.Guest{{ID: "G1"}, {ID: "G2"}}
	sessions := []models.Session{{ID: "S1"}, {ID: "S2"}}
	questions := []models.Question{
		{ID: "Q1", Type: models.QuestionMultiChoice},
		{ID: "Q2", SessionID: "S2", Type: models.QuestionNumber},
	}
	sel := NewSelections(nil, nil)
	sel.SetAttendance("G1", "S1", models.RSVPStatusMaybe)
	sel.SetAttendance("G2", "S2", models.RSVPStatusAttending)
	sel.SetAnswer("G1", "Q1", models.ChoicesAnswer("Gluten"))
	sel.SetAnswer("G2", "Q2", models.NumberAnswer(2))

	first := Build(guests, sessions, questions, sel, submittedAt)
	second := Build(guests, sessions, questions, sel, submittedAt)

	assert.ElementsMatch(t, first.Attendance, second.Attendance)
	assert.ElementsMatch(t, first.Answers, second.Answers)
	assert.Len(t, first.Answers, 2)
}

func TestBuildRoundTripsHydratedRecords(t *testing.T) {
	guests := []models.Guest{{ID: "G1"}, {ID: "G2"}}
	sessions := []models.Session{{ID: "S1"}, {ID: "S2"}}
	questions := []models.Question{
		{ID: "Q1", Type: models.QuestionText},
		{ID: "Q2", SessionID: "S2", Type: models.QuestionSingleChoice},
	}
	prior := []models.Attendance{
		{GuestID: "G1", SessionID: "S1", Status: models.RSVPStatusAttending, RespondedAt: submittedAt},
		{GuestID: "G1", SessionID: "S2", Status: models.RSVPStatusAttending, RespondedAt: submittedAt},
		{GuestID: "G2", SessionID: "S2", Status: models.RSVPStatusNotAttending, RespondedAt: submittedAt},
	}
	priorAnswers := []models.Answer{
		{GuestID: "G1", QuestionID: "Q1", Value: models.TextAnswer("Hello")},
		{GuestID: "G1", QuestionID: "Q2", SessionID: "S2", Value: models.ChoiceAnswer("Fish")},
		{GuestID: "G2", QuestionID: "Q1", Value: models.TextAnswer("Sorry")},
	}

	sub := Build(guests, sessions, questions, NewSelections(prior, priorAnswers), submittedAt)

	assert.ElementsMatch(t, prior, sub.Attendance)
	assert.ElementsMatch(t, priorAnswers, sub.Answers)
	assert.Empty(t, sub.Dropped)
}
