package handlers

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/rsvp-planner/app/internal/database"
	"github.com/rsvp-planner/app/internal/notify"
	"github.com/rsvp-planner/app/internal/rsvp"
)

//go:embed static
var staticFiles embed.FS

// Notifier is told about every saved submission.
type Notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

// Options configures a Server. Zero values are usable.
type Options struct {
	ServiceName string
	Version     string
	SessionTTL  time.Duration
	Notifier    Notifier
	Logger      zerolog.Logger
	// Gateway overrides the database-backed response gateway.
	Gateway rsvp.Gateway
}

// Server holds the dependencies shared by every handler.
type Server struct {
	db        *sqlx.DB
	submitter *rsvp.Submitter
	sessions  *SessionStore
	notifier  Notifier
	log       zerolog.Logger
	info      Info
}

// Info is returned by GET /info.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func NewServer(db *sqlx.DB, opts Options) (*Server, error) {
	if err := loadTemplates(); err != nil {
		return nil, err
	}
	gateway := opts.Gateway
	if gateway == nil {
		gateway = database.NewResponseGateway(db)
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Server{
		db:        db,
		submitter: rsvp.NewSubmitter(gateway),
		sessions:  NewSessionStore(ttl),
		notifier:  opts.Notifier,
		log:       opts.Logger,
		info:      Info{Name: opts.ServiceName, Version: opts.Version},
	}, nil
}

// Submitter exposes the submit pipeline so tests can pin its clock.
func (s *Server) Submitter() *rsvp.Submitter {
	return s.submitter
}

// Router wires every route onto a new httprouter.Router.
func (s *Server) Router() *httprouter.Router {
	router := httprouter.New()

	router.GET("/info", s.GetInfo)

	router.POST("/register", s.Register)
	router.POST("/login", s.Login)
	router.POST("/logout", s.Logout)

	router.GET("/api/events", s.requireUser(s.ListEvents))
	router.POST("/api/events", s.requireUser(s.CreateEvent))
	router.GET("/api/events/:eventID", s.requireUser(s.GetEvent))
	router.GET("/api/events/:eventID/sessions", s.requireUser(s.ListSessions))
	router.POST("/api/events/:eventID/sessions", s.requireUser(s.CreateSession))
	router.GET("/api/events/:eventID/households", s.requireUser(s.ListHouseholds))
	router.POST("/api/events/:eventID/households", s.requireUser(s.CreateHousehold))
	router.GET("/api/events/:eventID/guests", s.requireUser(s.ListGuests))
	router.POST("/api/events/:eventID/guests", s.requireUser(s.CreateGuest))
	router.GET("/api/events/:eventID/questions", s.requireUser(s.ListQuestions))
	router.POST("/api/events/:eventID/questions", s.requireUser(s.CreateQuestion))
	router.GET("/api/events/:eventID/dashboard", s.requireUser(s.Dashboard))

	router.GET("/r/:token", s.RSVPPage)
	router.POST("/r/:token", s.SubmitRSVP)

	static, _ := fs.Sub(staticFiles, "static")
	router.ServeFiles("/static/*filepath", http.FS(static))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return router
}

// Handler returns the router wrapped with request logging.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router()
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	h = hlog.RequestIDHandler("req_id", "Request-Id")(h)
	h = hlog.NewHandler(s.log)(h)
	return h
}

func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.info)
}
