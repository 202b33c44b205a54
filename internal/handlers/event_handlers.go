package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/rsvp-planner/app/internal/database"
	"github.com/rsvp-planner/app/internal/models"
	"github.com/rsvp-planner/app/internal/rsvp"
)

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// ownedEvent loads the :eventID route parameter. Events owned by someone
// else are reported as not found.
func (s *Server) ownedEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (*models.Event, bool) {
	event, err := database.GetEventByID(r.Context(), s.db, ps.ByName("eventID"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return nil, false
		}
		s.internalError(w, r, err, "error loading event")
		return nil, false
	}
	if event.UserID != currentUser(r).ID {
		writeError(w, http.StatusNotFound, "event not found")
		return nil, false
	}
	return event, true
}

func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	events, err := database.GetEventsForUser(r.Context(), s.db, currentUser(r).ID)
	if err != nil {
		s.internalError(w, r, err, "error listing events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var event models.Event
	if err := decodeJSON(r, &event); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	event.UserID = currentUser(r).ID
	event.Title = strings.TrimSpace(event.Title)
	if err := event.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err := database.GetEventBySlug(r.Context(), s.db, event.Slug)
	if err == nil {
		writeError(w, http.StatusConflict, "slug already in use")
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		s.internalError(w, r, err, "error looking up event slug")
		return
	}

	created, err := database.CreateEvent(r.Context(), s.db, &event)
	if err != nil {
		s.internalError(w, r, err, "error creating event")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}
	sessions, err := database.GetSessionsForEvent(r.Context(), s.db, event.ID)
	if err != nil {
		s.internalError(w, r, err, "error listing sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}

	var session models.Session
	if err := decodeJSON(r, &session); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session.Name = strings.TrimSpace(session.Name)
	switch {
	case session.Name == "":
		writeError(w, http.StatusBadRequest, "name is required")
		return
	case session.StartsAt.IsZero():
		writeError(w, http.StatusBadRequest, "startsAt is required")
		return
	case session.EndsAt != nil && session.EndsAt.Before(session.StartsAt):
		writeError(w, http.StatusBadRequest, "endsAt is before startsAt")
		return
	}
	session.EventID = event.ID

	created, err := database.CreateSession(r.Context(), s.db, &session)
	if err != nil {
		s.internalError(w, r, err, "error creating session")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) ListHouseholds(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}
	households, err := database.GetHouseholdsForEvent(r.Context(), s.db, event.ID)
	if err != nil {
		s.internalError(w, r, err, "error listing households")
		return
	}
	writeJSON(w, http.StatusOK, households)
}

func (s *Server) CreateHousehold(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Notes string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := database.CreateHousehold(r.Context(), s.db, &models.Household{
		EventID: event.ID,
		Name:    strings.TrimSpace(req.Name),
		Notes:   req.Notes,
	})
	if err != nil {
		s.internalError(w, r, err, "error creating household")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) ListGuests(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}
	guests, err := database.GetGuestsForEvent(r.Context(), s.db, event.ID)
	if err != nil {
		s.internalError(w, r, err, "error listing guests")
		return
	}
	writeJSON(w, http.StatusOK, guests)
}

func (s *Server) CreateGuest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}

	var guest models.Guest
	if err := decodeJSON(r, &guest); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	guest.FirstName = strings.TrimSpace(guest.FirstName)
	guest.LastName = strings.TrimSpace(guest.LastName)
	if guest.FirstName == "" || guest.LastName == "" {
		writeError(w, http.StatusBadRequest, "firstName and lastName are required")
		return
	}
	switch guest.Role {
	case "", models.GuestRolePrimary, models.GuestRolePlusOne, models.GuestRoleChild, models.GuestRoleOther:
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown role %q", guest.Role))
		return
	}

	if guest.HouseholdID != "" {
		households, err := database.GetHouseholdsForEvent(r.Context(), s.db, event.ID)
		if err != nil {
			s.internalError(w, r, err, "error listing households")
			return
		}
		if !containsHousehold(households, guest.HouseholdID) {
			writeError(w, http.StatusBadRequest, "householdId does not belong to this event")
			return
		}
	}
	guest.EventID = event.ID

	created, err := database.CreateGuest(r.Context(), s.db, &guest)
	if err != nil {
		s.internalError(w, r, err, "error creating guest")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func containsHousehold(households []models.Household, id string) bool {
	for _, h := range households {
		if h.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) ListQuestions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}
	questions, err := database.GetQuestionsForEvent(r.Context(), s.db, event.ID)
	if err != nil {
		s.internalError(w, r, err, "error listing questions")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Server) CreateQuestion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}

	var question models.Question
	if err := decodeJSON(r, &question); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	question.Label = strings.TrimSpace(question.Label)
	switch {
	case question.Label == "":
		writeError(w, http.StatusBadRequest, "label is required")
		return
	case !question.Type.Valid():
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown question type %q", question.Type))
		return
	case (question.Type == models.QuestionSingleChoice || question.Type == models.QuestionMultiChoice) && len(question.Options) == 0:
		writeError(w, http.StatusBadRequest, "choice questions need at least one option")
		return
	}

	if question.SessionID != "" {
		sessions, err := database.GetSessionsForEvent(r.Context(), s.db, event.ID)
		if err != nil {
			s.internalError(w, r, err, "error listing sessions")
			return
		}
		if !containsSession(sessions, question.SessionID) {
			writeError(w, http.StatusBadRequest, "sessionId does not belong to this event")
			return
		}
	}
	question.EventID = event.ID

	created, err := database.CreateQuestion(r.Context(), s.db, &question)
	if err != nil {
		s.internalError(w, r, err, "error creating question")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func containsSession(sessions []models.Session, id string) bool {
	for _, s := range sessions {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Dashboard returns response totals and the per-guest status grid.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := s.ownedEvent(w, r, ps)
	if !ok {
		return
	}

	ctx := r.Context()
	guests, err := database.GetGuestsForEvent(ctx, s.db, event.ID)
	if err != nil {
		s.internalError(w, r, err, "error listing guests")
		return
	}
	sessions, err := database.GetSessionsForEvent(ctx, s.db, event.ID)
	if err != nil {
		s.internalError(w, r, err, "error listing sessions")
		return
	}
	attendance, err := database.GetAttendanceForEvent(ctx, s.db, event.ID)
	if err != nil {
		s.internalError(w, r, err, "error listing attendance")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Event       *models.Event `json:"event"`
		GeneratedAt time.Time     `json:"generatedAt"`
		rsvp.Summary
	}{event, time.Now().UTC(), rsvp.Summarize(guests, sessions, attendance)})
}
