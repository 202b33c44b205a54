package rsvp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsvp-planner/app/internal/models"
)

// fakeGateway stages writes per transaction and only keeps them when the
// transaction function succeeds.
type fakeGateway struct {
	txCount  int
	failWith map[string]error

	attendance   []models.Attendance
	answers      []models.Answer
	replaceScope [][]string
}

type fakeWriter struct {
	gw           *fakeGateway
	attendance   []models.Attendance
	answers      []models.Answer
	replaceScope [][]string
}

func (f *fakeGateway) WithinTx(ctx context.Context, fn func(Writer) error) error {
	f.txCount++
	w := &fakeWriter{gw: f}
	if err := fn(w); err != nil {
		return err
	}
	f.attendance = append(f.attendance, w.attendance...)
	f.answers = append(f.answers, w.answers...)
	f.replaceScope = append(f.replaceScope, w.replaceScope...)
	return nil
}

func (w *fakeWriter) UpsertAttendance(ctx context.Context, records []models.Attendance) error {
	if err := w.gw.failWith["attendance"]; err != nil {
		return err
	}
	w.attendance = append(w.attendance, records...)
	return nil
}

func (w *fakeWriter) ReplaceAnswers(ctx context.Context, guestIDs, questionIDs []string, records []models.Answer) error {
	if err := w.gw.failWith["answers"]; err != nil {
		return err
	}
	w.replaceScope = append(w.replaceScope, guestIDs, questionIDs)
	w.answers = append(w.answers, records...)
	return nil
}

func newTestSubmitter(gw Gateway) *Submitter {
	s := NewSubmitter(gw)
	s.Clock = func() time.Time { return submittedAt }
	return s
}

func TestSubmitWritesAttendanceAndAnswers(t *testing.T) {
	guests, sessions, questions := twoSessionForm()
	sel := NewSelections(nil, nil)
	sel.SetAttendance("G", "S1", models.RSVPStatusAttending)
	sel.SetAttendance("G", "S2", models.RSVPStatusAttending)
	sel.SetAnswer("G", "Q1", models.TextAnswer("Vegetarian"))

	gw := &fakeGateway{}
	sub, err := newTestSubmitter(gw).Submit(context.Background(), Form{guests, sessions, questions, sel})
	require.NoError(t, err)

	assert.Equal(t, 1, gw.txCount)
	assert.Equal(t, sub.Attendance, gw.attendance)
	assert.Equal(t, sub.Answers, gw.answers)
	assert.Equal(t, [][]string{{"G"}, {"Q1"}}, gw.replaceScope)
}

func TestSubmitSkipsGatewayWhenNothingSelected(t *testing.T) {
	guests, sessions, questions := twoSessionForm()
	gw := &fakeGateway{}

	sub, err := newTestSubmitter(gw).Submit(context.Background(), Form{guests, sessions, questions, NewSelections(nil, nil)})
	require.NoError(t, err)

	assert.True(t, sub.Empty())
	assert.Zero(t, gw.txCount)
}

func TestSubmitClearsAnswerScopeAfterDowngrade(t *testing.T) {
	guests, sessions, questions := twoSessionForm()
	sel := NewSelections(
		[]models.Attendance{{GuestID: "G", SessionID: "S2", Status: models.RSVPStatusAttending}},
		[]models.Answer{{GuestID: "G", QuestionID: "Q1", SessionID: "S2", Value: models.TextAnswer("Vegetarian")}},
	)
	sel.SetAttendance("G", "S2", models.RSVPStatusNotAttending)

	gw := &fakeGateway{}
	sub, err := newTestSubmitter(gw).Submit(context.Background(), Form{guests, sessions, questions, sel})
	require.NoError(t, err)

	assert.Len(t, sub.Dropped, 1)
	assert.Empty(t, gw.answers)
	assert.Equal(t, [][]string{{"G"}, {"Q1"}}, gw.replaceScope, "the stale answer is replaced by nothing")
}

func TestSubmitIsAllOrNothing(t *testing.T) {
	guests, sessions, questions := twoSessionForm()
	sel := NewSelections(nil, nil)
	sel.SetAttendance("G", "S2", models.RSVPStatusAttending)
	sel.SetAnswer("G", "Q1", models.TextAnswer("Vegetarian"))

	cause := errors.New("constraint violation")
	gw := &fakeGateway{failWith: map[string]error{"answers": cause}}

	sub, err := newTestSubmitter(gw).Submit(context.Background(), Form{guests, sessions, questions, sel})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmitFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "replace answers")

	assert.Len(t, sub.Attendance, 1, "the built submission is still returned")
	assert.Empty(t, gw.attendance, "attendance must not survive a failed answer write")
}

func TestSubmitAttendanceFailureSkipsAnswers(t *testing.T) {
	guests, sessions, questions := twoSessionForm()
	sel := NewSelections(nil, nil)
	sel.SetAttendance("G", "S1", models.RSVPStatusAttending)

	gw := &fakeGateway{failWith: map[string]error{"attendance": errors.New("connection refused")}}
	_, err := newTestSubmitter(gw).Submit(context.Background(), Form{guests, sessions, questions, sel})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert attendance")
	assert.Empty(t, gw.replaceScope)
}
