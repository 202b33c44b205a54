package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"

	"github.com/rsvp-planner/app/internal/database"
	"github.com/rsvp-planner/app/internal/models"
)

const sessionCookieName = "session_token"

type ctxKey int

const userKey ctxKey = iota

// Register creates an organizer account from the email, password and
// confirm_password form fields.
func (s *Server) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "error parsing form")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirmPassword := r.FormValue("confirm_password")

	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if password != confirmPassword {
		writeError(w, http.StatusBadRequest, "passwords do not match")
		return
	}

	_, err := database.GetUserByEmail(r.Context(), s.db, email)
	if err == nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		s.internalError(w, r, err, "error looking up user")
		return
	}

	user, err := database.CreateUser(r.Context(), s.db, email, password)
	if err != nil {
		s.internalError(w, r, err, "error creating user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login checks credentials and sets the session cookie.
func (s *Server) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "error parsing form")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := database.GetUserByEmail(r.Context(), s.db, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.internalError(w, r, err, "error looking up user")
		return
	}

	if err := database.VerifyPassword(user.PasswordHash, password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, expires := s.sessions.Create(user.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, user)
}

// Logout ends the current session, if any.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.Delete(cookie.Value)
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireUser rejects requests without a live session and stores the
// organizer in the request context.
func (s *Server) requireUser(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		userID, ok := s.sessions.Lookup(cookie.Value)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := database.GetUserByID(r.Context(), s.db, userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				s.sessions.Delete(cookie.Value)
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			s.internalError(w, r, err, "error loading session user")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)), ps)
	}
}

// currentUser is only valid inside handlers wrapped by requireUser.
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	hlog.FromRequest(r).Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
