// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http/handlers"
)

// Unmatched-route messages.
const (
	MsgRouteNotFound    = "route not found"
	MsgMethodNotAllowed = "method not allowed"
)

// MetricsEndpoint mounts a scrape handler on the router. The zero value
// mounts nothing.
type MetricsEndpoint struct {
	Path    string
	Handler http.Handler
}

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
	metrics MetricsEndpoint,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteError(w, req, http.StatusNotFound, MsgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteError(w, req, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	})

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	if metrics.Handler != nil && metrics.Path != "" {
		r.Method(http.MethodGet, metrics.Path, metrics.Handler)
	}

	r.Get("/todos", todoHandler.ListTodos)
	r.Post("/todos", todoHandler.CreateTodo)
	r.Get("/todos/{id}", todoHandler.GetTodo)
	r.Put("/todos/{id}", todoHandler.ReplaceTodo)
	r.Patch("/todos/{id}", todoHandler.UpdateTodo)
	r.Delete("/todos/{id}", todoHandler.DeleteTodo)

	return r
}
