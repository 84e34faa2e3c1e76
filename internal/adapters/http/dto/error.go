package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
)

// Generic client-facing messages. Driver details only reach the log.
const (
	MsgNotFound       = "todo not found"
	MsgInternalServer = "internal server error"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse maps a domain error to its HTTP status and body.
func NewErrorResponse(err error) (int, ErrorResponse) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Error: verr.Error()}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: MsgNotFound}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: MsgInternalServer}
	}
}

// WriteErrorResponse writes the status and {"error": ...} body for a domain error.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, body := NewErrorResponse(err)
	WriteError(w, r, status, body.Error)
}

// WriteError writes a JSON error body with an explicit status. Used by
// middleware for statuses that have no domain error (429, 504).
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); encErr != nil {
		slog.ErrorContext(r.Context(), "failed to encode error response",
			slog.Any("error", encErr),
		)
	}
}
