// Package httpapi exposes the planner services as a JSON-over-HTTP API.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/goodvibes/planner/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth      service.AuthService
	todos     service.TodoService
	calendars service.CalendarService
	templates service.TemplateService
	migration service.MigrationService
	log       *zap.Logger
}

// New constructs a Server with injected services.
func New(
	auth service.AuthService,
	todos service.TodoService,
	calendars service.CalendarService,
	templates service.TemplateService,
	migration service.MigrationService,
	log *zap.Logger,
) *Server {
	return &Server{
		auth:      auth,
		todos:     todos,
		calendars: calendars,
		templates: templates,
		migration: migration,
		log:       log,
	}
}

// Router builds the chi router with middleware and all API routes.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(Logging(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.health)
	r.Post("/api/token", s.login)
	r.Post("/api/register", s.register)

	r.Group(func(r chi.Router) {
		r.Use(s.RequireAuth)

		r.Get("/api/users/me", s.me)

		r.Route("/api/todos", func(r chi.Router) {
			r.Get("/", s.listTodos)
			r.Post("/", s.createTodo)
			r.Get("/{id}", s.getTodo)
			r.Put("/{id}", s.updateTodo)
			r.Delete("/{id}", s.deleteTodo)
		})

		r.Route("/api/calendars", func(r chi.Router) {
			r.Get("/", s.listCalendars)
			r.Post("/", s.createCalendar)
			r.Put("/{id}", s.updateCalendar)
			r.Delete("/{id}", s.deleteCalendar)
		})

		r.Route("/api/templates", func(r chi.Router) {
			r.Get("/", s.listTemplates)
			r.Post("/", s.createTemplate)
			r.Delete("/{id}", s.deleteTemplate)
		})

		r.Post("/api/migrate", s.migrate)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
