package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"

	"github.com/rsvp-planner/app/internal/database"
	"github.com/rsvp-planner/app/internal/models"
	"github.com/rsvp-planner/app/internal/notify"
	"github.com/rsvp-planner/app/internal/rsvp"
)

const (
	savedMessage   = "Thank you! Your RSVP has been saved."
	nothingMessage = "Nothing to save yet. Choose a response for at least one session."
)

// rsvpStatuses are offered for every guest and session, in this order.
var rsvpStatuses = []models.RSVPStatus{
	models.RSVPStatusAttending,
	models.RSVPStatusNotAttending,
	models.RSVPStatusMaybe,
	models.RSVPStatusNoResponse,
}

func attendanceField(guestID, sessionID string) string {
	return "attendance." + guestID + "." + sessionID
}

func answerField(guestID, questionID string) string {
	return "answer." + guestID + "." + questionID
}

// householdForm is everything the guest page needs for one household.
type householdForm struct {
	event     *models.Event
	household *models.Household
	form      rsvp.Form
}

func (s *Server) loadHouseholdForm(ctx context.Context, token string) (*householdForm, error) {
	household, err := database.GetHouseholdByToken(ctx, s.db, token)
	if err != nil {
		return nil, err
	}
	event, err := database.GetEventByID(ctx, s.db, household.EventID)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	guests, err := database.GetGuestsForHousehold(ctx, s.db, household.ID)
	if err != nil {
		return nil, fmt.Errorf("load guests: %w", err)
	}
	sessions, err := database.GetSessionsForEvent(ctx, s.db, event.ID)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	questions, err := database.GetQuestionsForEvent(ctx, s.db, event.ID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	ids := make([]string, len(guests))
	for i, g := range guests {
		ids[i] = g.ID
	}
	attendance, err := database.GetAttendanceForGuests(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	answers, err := database.GetAnswersForGuests(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}

	return &householdForm{
		event:     event,
		household: household,
		form: rsvp.Form{
			Guests:     guests,
			Sessions:   sessions,
			Questions:  questions,
			Selections: rsvp.NewSelections(attendance, answers),
		},
	}, nil
}

// RSVPPage renders the household's RSVP form with their saved selections.
func (s *Server) RSVPPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hf, ok := s.householdFormOrError(w, r, ps.ByName("token"))
	if !ok {
		return
	}
	s.renderTemplate(w, http.StatusOK, "rsvp.html", newRSVPPage(hf))
}

// SubmitRSVP applies the posted fields on top of the saved selections and
// persists the result. Fields missing from the post keep their saved value.
func (s *Server) SubmitRSVP(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hf, ok := s.householdFormOrError(w, r, ps.ByName("token"))
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		page := newRSVPPage(hf)
		page.Error = "We could not read your response. Please try again."
		s.renderTemplate(w, http.StatusBadRequest, "rsvp.html", page)
		return
	}

	if problems := applyForm(hf.form, r.PostForm); len(problems) > 0 {
		page := newRSVPPage(hf)
		page.Error = "Please check your answers: " + strings.Join(problems, "; ")
		s.renderTemplate(w, http.StatusBadRequest, "rsvp.html", page)
		return
	}

	logger := hlog.FromRequest(r).With().
		Str("household_id", hf.household.ID).
		Str("event_id", hf.event.ID).
		Logger()

	sub, err := s.submitter.Submit(r.Context(), hf.form)
	page := newRSVPPage(hf)
	if err != nil {
		logger.Error().Err(err).Msg("error saving rsvp")
		page.Error = rsvp.GenericFailureMessage
		s.renderTemplate(w, http.StatusInternalServerError, "rsvp.html", page)
		return
	}

	page.Dropped = droppedAnswers(hf.form, sub.Dropped)
	if sub.Empty() {
		page.Message = nothingMessage
		s.renderTemplate(w, http.StatusOK, "rsvp.html", page)
		return
	}

	page.Message = savedMessage
	logger.Info().
		Int("attendance", len(sub.Attendance)).
		Int("answers", len(sub.Answers)).
		Int("dropped", len(sub.Dropped)).
		Msg("rsvp saved")

	s.notifySubmission(r.Context(), hf, sub)
	s.renderTemplate(w, http.StatusOK, "rsvp.html", page)
}

func (s *Server) householdFormOrError(w http.ResponseWriter, r *http.Request, token string) (*householdForm, bool) {
	hf, err := s.loadHouseholdForm(r.Context(), token)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.renderErrorPage(w, http.StatusNotFound, "Invitation Not Found",
				"This RSVP link is not valid. Please check the link in your invitation.")
			return nil, false
		}
		hlog.FromRequest(r).Error().Err(err).Msg("error loading rsvp form")
		s.renderErrorPage(w, http.StatusInternalServerError, "Something Went Wrong",
			"We could not load your invitation. Please try again later.")
		return nil, false
	}
	return hf, true
}

// applyForm writes the posted values into form.Selections and returns a
// description of every value that could not be parsed.
func applyForm(form rsvp.Form, values map[string][]string) []string {
	var problems []string
	for _, g := range form.Guests {
		for _, sess := range form.Sessions {
			raw, ok := values[attendanceField(g.ID, sess.ID)]
			if !ok || len(raw) == 0 {
				continue
			}
			status, err := models.ParseRSVPStatus(strings.TrimSpace(raw[0]))
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s, %s: %v", g.FullName(), sess.Name, err))
				continue
			}
			form.Selections.SetAttendance(g.ID, sess.ID, status)
		}
		for _, q := range form.Questions {
			raw, ok := values[answerField(g.ID, q.ID)]
			if !ok {
				continue
			}
			value, err := models.ParseAnswer(q, raw)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s, %s: %v", g.FullName(), q.Label, err))
				continue
			}
			form.Selections.SetAnswer(g.ID, q.ID, value)
		}
	}
	return problems
}

func (s *Server) notifySubmission(ctx context.Context, hf *householdForm, sub rsvp.Submission) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Notify(ctx, notify.Notification{
		EventID:       hf.event.ID,
		EventTitle:    hf.event.Title,
		HouseholdID:   hf.household.ID,
		HouseholdName: hf.household.Name,
		Attendance:    len(sub.Attendance),
		Answers:       len(sub.Answers),
		Dropped:       len(sub.Dropped),
		SubmittedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("household_id", hf.household.ID).Msg("error sending submission notification")
	}
}

type rsvpPage struct {
	Title       string
	Event       *models.Event
	Household   *models.Household
	Guests      []guestForm
	Statuses    []models.RSVPStatus
	Message     string
	Error       string
	Dropped     []droppedAnswer
	CurrentYear int
}

type guestForm struct {
	Guest     models.Guest
	Sessions  []sessionField
	Questions []questionField
}

type sessionField struct {
	Session models.Session
	Field   string
	Status  models.RSVPStatus
}

type questionField struct {
	Question    models.Question
	Field       string
	Value       models.AnswerValue
	Visible     bool
	SessionName string
}

// Selected reports whether opt is the chosen option of a choice question.
func (f questionField) Selected(opt string) bool {
	if f.Value.Choice == opt {
		return true
	}
	for _, c := range f.Value.Choices {
		if c == opt {
			return true
		}
	}
	return false
}

// BoolValue is "yes", "no" or "" for the select element.
func (f questionField) BoolValue() string {
	if f.Value.Bool == nil {
		return ""
	}
	if *f.Value.Bool {
		return "yes"
	}
	return "no"
}

type droppedAnswer struct {
	GuestName     string
	QuestionLabel string
	SessionName   string
}

func newRSVPPage(hf *householdForm) *rsvpPage {
	sessionNames := make(map[string]string, len(hf.form.Sessions))
	for _, sess := range hf.form.Sessions {
		sessionNames[sess.ID] = sess.Name
	}

	sel := hf.form.Selections
	guests := make([]guestForm, 0, len(hf.form.Guests))
	for _, g := range hf.form.Guests {
		gf := guestForm{Guest: g}
		for _, sess := range hf.form.Sessions {
			gf.Sessions = append(gf.Sessions, sessionField{
				Session: sess,
				Field:   attendanceField(g.ID, sess.ID),
				Status:  sel.Attendance(g.ID, sess.ID),
			})
		}
		for _, q := range hf.form.Questions {
			value, ok := sel.Answer(g.ID, q.ID)
			if !ok {
				value = models.AnswerValue{Type: q.Type}
			}
			gf.Questions = append(gf.Questions, questionField{
				Question:    q,
				Field:       answerField(g.ID, q.ID),
				Value:       value,
				Visible:     rsvp.IsVisible(q, g.ID, sel),
				SessionName: sessionNames[q.SessionID],
			})
		}
		guests = append(guests, gf)
	}

	return &rsvpPage{
		Title:       hf.event.Title,
		Event:       hf.event,
		Household:   hf.household,
		Guests:      guests,
		Statuses:    rsvpStatuses,
		CurrentYear: time.Now().Year(),
	}
}

func droppedAnswers(form rsvp.Form, dropped []models.Answer) []droppedAnswer {
	if len(dropped) == 0 {
		return nil
	}
	guestNames := make(map[string]string, len(form.Guests))
	for _, g := range form.Guests {
		guestNames[g.ID] = g.FullName()
	}
	labels := make(map[string]string, len(form.Questions))
	for _, q := range form.Questions {
		labels[q.ID] = q.Label
	}
	sessionNames := make(map[string]string, len(form.Sessions))
	for _, sess := range form.Sessions {
		sessionNames[sess.ID] = sess.Name
	}

	out := make([]droppedAnswer, len(dropped))
	for i, a := range dropped {
		out[i] = droppedAnswer{
			GuestName:     guestNames[a.GuestID],
			QuestionLabel: labels[a.QuestionID],
			SessionName:   sessionNames[a.SessionID],
		}
	}
	return out
}
