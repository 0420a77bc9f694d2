package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ajitpratap0/focusflow/internal/backup"
	"github.com/ajitpratap0/focusflow/internal/metrics"
	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/query"
	"github.com/ajitpratap0/focusflow/internal/state"
)

// maxBody bounds dispatch request bodies.
const maxBody = 1 << 20

// Server is an HTTP API server over a state container.
type Server struct {
	store     *state.Store
	logger    *slog.Logger
	authToken string // empty = no auth required
}

// NewServer creates a new Server with the given dependencies.
func NewServer(st *state.Store, logger *slog.Logger, authToken string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:     st,
		logger:    logger,
		authToken: authToken,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check, no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("GET /v1/state", s.auth(s.handleState))
	mux.HandleFunc("POST /v1/dispatch", s.auth(s.handleDispatch))
	mux.HandleFunc("GET /v1/ideas", s.auth(s.handleIdeas))
	mux.HandleFunc("GET /v1/events", s.auth(s.handleEvents))
	mux.HandleFunc("GET /v1/stats", s.auth(s.handleStats))
	mux.HandleFunc("GET /v1/export", s.auth(s.handleExport))
	mux.HandleFunc("POST /v1/import", s.auth(s.handleImport))
	mux.HandleFunc("GET /debug/vars", s.auth(expvar.Handler().ServeHTTP))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.State())
}

// dispatchResponse is returned by POST /v1/dispatch.
type dispatchResponse struct {
	Type  state.Kind     `json:"type"`
	State state.AppState `json:"state"`
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	var env state.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if env.Type == "" {
		s.writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	action, err := state.DecodeAction(env)
	if err == nil {
		err = state.Validate(action)
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.store.Dispatch(action)
	s.writeJSON(w, http.StatusOK, dispatchResponse{Type: action.Kind(), State: s.store.State()})
}

// spaceAliases maps English query values to mental spaces.
var spaceAliases = map[string]models.MentalSpace{
	"today":    models.SpaceToday,
	"active":   models.SpaceActive,
	"recent":   models.SpaceRecent,
	"archived": models.SpaceArchived,
	"calendar": models.SpaceCalendar,
}

func parseSpace(v string) (models.MentalSpace, bool) {
	if sp, ok := spaceAliases[v]; ok {
		return sp, true
	}
	sp := models.MentalSpace(v)
	return sp, sp.IsValid()
}

// ideasResponse is returned by GET /v1/ideas.
type ideasResponse struct {
	Ideas []models.Idea `json:"ideas"`
	Count int           `json:"count"`
}

// handleIdeas serves ?date= (exact date), else ?space= (default today),
// optionally narrowed by ?layer=.
func (s *Server) handleIdeas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ideas := s.store.State().Ideas

	var out []models.Idea
	if date := q.Get("date"); date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		out = query.IdeasByDate(ideas, date)
	} else {
		space := models.SpaceToday
		if v := q.Get("space"); v != "" {
			var ok bool
			if space, ok = parseSpace(v); !ok {
				s.writeError(w, http.StatusBadRequest, "invalid space")
				return
			}
		}
		out = query.IdeasInSpace(ideas, space, s.store.Now())
	}

	if v := q.Get("layer"); v != "" {
		filter := models.LayerFilter(v)
		if !filter.IsValid() {
			s.writeError(w, http.StatusBadRequest, "invalid layer")
			return
		}
		out = query.InLayer(out, filter)
	}

	s.writeJSON(w, http.StatusOK, ideasResponse{Ideas: out, Count: len(out)})
}

// eventsResponse is returned by GET /v1/events.
type eventsResponse struct {
	Events []models.AgendaEvent `json:"eventos"`
	Count  int                  `json:"count"`
}

// handleEvents serves ?view=today|upcoming|completed (default upcoming) or
// ?date= for a single day.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events := s.store.State().Events
	today := s.store.Today()

	var out []models.AgendaEvent
	if date := q.Get("date"); date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		out = query.EventsByDate(events, date)
		query.SortChronologically(out)
	} else {
		switch q.Get("view") {
		case "", "upcoming":
			out = query.UpcomingEvents(events, today)
		case "today":
			out = query.EventsToday(events, today)
			query.SortChronologically(out)
		case "completed":
			out = query.CompletedEvents(events)
		default:
			s.writeError(w, http.StatusBadRequest, "invalid view")
			return
		}
	}

	s.writeJSON(w, http.StatusOK, eventsResponse{Events: out, Count: len(out)})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Stats())
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	now := s.store.Now()
	doc := backup.NewExport(s.store.State(), now)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.FileName(now)))
	w.WriteHeader(http.StatusOK)
	if err := backup.Write(w, doc); err != nil {
		s.logger.Error("failed to write export", "error", err)
	}
}

// importResponse is returned by POST /v1/import.
type importResponse struct {
	Imported        int  `json:"imported"`
	SettingsApplied bool `json:"settings_applied"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	load, err := backup.ParseImport(r.Body)
	if err != nil {
		if errors.Is(err, backup.ErrMalformedImport) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to read import", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to read import")
		return
	}

	s.store.Dispatch(load)
	metrics.Inc(metrics.Imports)
	s.logger.Info("imported backup", "ideas", len(load.Ideas), "settings", load.Settings != nil)
	s.writeJSON(w, http.StatusOK, importResponse{Imported: len(load.Ideas), SettingsApplied: load.Settings != nil})
}

// --- helpers ---

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
