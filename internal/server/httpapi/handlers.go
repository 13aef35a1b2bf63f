package httpapi

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goodvibes/planner/internal/errs"
	"github.com/goodvibes/planner/internal/model"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Good Vibes API is running!"})
}

// owner returns the authenticated username placed in context by RequireAuth.
func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, ok := UsernameFromCtx(r.Context())
	if !ok {
		unauthorized(w)
	}
	return name, ok
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// handleErr maps service errors onto HTTP statuses. notFound carries the
// entity-specific 404 message.
func handleErr(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, errs.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, errs.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "Incorrect username or password")
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many failed login attempts")
	case errors.Is(err, errs.ErrMigrationFailed):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// --- Auth ---

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// clientIP strips the ephemeral port from RemoteAddr so rate-limit keys stay
// stable across connections from the same host.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !decode(w, r, &creds) {
		return
	}
	tok, err := s.auth.LoginWithIP(r.Context(), creds.Username, creds.Password, clientIP(r))
	if err != nil {
		handleErr(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !decode(w, r, &creds) {
		return
	}
	if creds.Username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	u, err := s.auth.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		handleErr(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": name})
}

// --- Todos ---

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	todos, err := s.todos.List(r.Context(), name)
	if err != nil {
		handleErr(w, err, "Todo not found")
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	var draft model.TodoDraft
	if !decode(w, r, &draft) {
		return
	}
	if draft.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if draft.Priority != "" && !model.ValidPriority(draft.Priority) {
		writeError(w, http.StatusBadRequest, "invalid priority")
		return
	}
	t, err := s.todos.Create(r.Context(), name, draft)
	if err != nil {
		handleErr(w, err, "Todo not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) getTodo(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	t, err := s.todos.Get(r.Context(), name, chi.URLParam(r, "id"))
	if err != nil {
		handleErr(w, err, "Todo not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) updateTodo(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	var patch model.TodoPatch
	if !decode(w, r, &patch) {
		return
	}
	if patch.Priority != nil && !model.ValidPriority(*patch.Priority) {
		writeError(w, http.StatusBadRequest, "invalid priority")
		return
	}
	t, err := s.todos.Update(r.Context(), name, chi.URLParam(r, "id"), patch)
	if err != nil {
		handleErr(w, err, "Todo not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	if err := s.todos.Delete(r.Context(), name, chi.URLParam(r, "id")); err != nil {
		handleErr(w, err, "Todo not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted successfully"})
}

// --- Calendars ---

func (s *Server) listCalendars(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	cals, err := s.calendars.List(r.Context(), name)
	if err != nil {
		handleErr(w, err, "Calendar not found")
		return
	}
	writeJSON(w, http.StatusOK, cals)
}

func (s *Server) createCalendar(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	var draft model.CalendarDraft
	if !decode(w, r, &draft) {
		return
	}
	if draft.Name == "" || draft.Color == "" {
		writeError(w, http.StatusBadRequest, "name and color are required")
		return
	}
	c, err := s.calendars.Create(r.Context(), name, draft)
	if err != nil {
		handleErr(w, err, "Calendar not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateCalendar(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	var patch model.CalendarPatch
	if !decode(w, r, &patch) {
		return
	}
	c, err := s.calendars.Update(r.Context(), name, chi.URLParam(r, "id"), patch)
	if err != nil {
		handleErr(w, err, "Calendar not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCalendar(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	if err := s.calendars.Delete(r.Context(), name, chi.URLParam(r, "id")); err != nil {
		handleErr(w, err, "Calendar not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Calendar and associated todos deleted successfully"})
}

// --- Templates ---

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	ts, err := s.templates.List(r.Context(), name)
	if err != nil {
		handleErr(w, err, "Template not found")
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	var draft model.TemplateDraft
	if !decode(w, r, &draft) {
		return
	}
	if draft.Name == "" || draft.Title == "" {
		writeError(w, http.StatusBadRequest, "name and title are required")
		return
	}
	if draft.Priority != "" && !model.ValidPriority(draft.Priority) {
		writeError(w, http.StatusBadRequest, "invalid priority")
		return
	}
	t, err := s.templates.Create(r.Context(), name, draft)
	if err != nil {
		handleErr(w, err, "Template not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	if err := s.templates.Delete(r.Context(), name, chi.URLParam(r, "id")); err != nil {
		handleErr(w, err, "Template not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Template deleted successfully"})
}

// --- Migration ---

type migrateResponse struct {
	Message  string                `json:"message"`
	Migrated model.MigrationCounts `json:"migrated"`
}

func (s *Server) migrate(w http.ResponseWriter, r *http.Request) {
	name, ok := owner(w, r)
	if !ok {
		return
	}
	var snap model.Snapshot
	if !decode(w, r, &snap) {
		return
	}
	counts, err := s.migration.Migrate(r.Context(), name, snap)
	if err != nil {
		handleErr(w, err, "")
		return
	}
	msg := "Data migrated successfully"
	if snap.Empty() {
		msg = "No data to migrate"
	}
	writeJSON(w, http.StatusOK, migrateResponse{Message: msg, Migrated: counts})
}
