package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
)

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// todoID extracts the {id} path parameter. The value stays opaque here; the
// store decides whether it can name a document.
func todoID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// readBody reads the request body, limited to maxJSONBodyBytes. On failure,
// it writes a 400 error response and returns false.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		reason := "could not be read"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			reason = "exceeds 1 MiB"
		}
		dto.WriteErrorResponse(w, r, domain.NewValidationError("body", reason))
		return nil, false
	}
	return body, true
}

// decodeBody reads the request body and runs decode on it. On read or
// validation failure it writes an error response and returns false.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, decode func([]byte) (T, error)) (T, bool) {
	var zero T

	body, ok := readBody(w, r)
	if !ok {
		return zero, false
	}

	v, err := decode(body)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return zero, false
	}
	return v, true
}
