package dto_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
)

func TestNewErrorResponse_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation error maps to 400 with its message",
			err:        domain.NewValidationError("title", domain.MsgRequired),
			wantStatus: http.StatusBadRequest,
			wantBody:   "title: is required",
		},
		{
			name:       "wrapped validation error keeps its message",
			err:        fmt.Errorf("decoding: %w", domain.NewValidationError("", "missing properties: 'completed'")),
			wantStatus: http.StatusBadRequest,
			wantBody:   "missing properties: 'completed'",
		},
		{
			name:       "not found maps to 404 with a generic message",
			err:        fmt.Errorf("find todo abc: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   dto.MsgNotFound,
		},
		{
			name:       "persistence error maps to 500 without details",
			err:        fmt.Errorf("insert todo: %w: %w", domain.ErrPersistence, errors.New("socket closed")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   dto.MsgInternalServer,
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("oops"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   dto.MsgInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, body := dto.NewErrorResponse(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Error != tt.wantBody {
				t.Errorf("body.Error = %q, want %q", body.Error, tt.wantBody)
			}
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/todos/abc", nil)
	w := httptest.NewRecorder()

	dto.WriteErrorResponse(w, r, domain.ErrNotFound)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body) != 1 || body["error"] != dto.MsgNotFound {
		t.Errorf("body = %v, want exactly {\"error\": %q}", body, dto.MsgNotFound)
	}
}

func TestWriteError_ExplicitStatus(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/todos", nil)
	w := httptest.NewRecorder()

	dto.WriteError(w, r, http.StatusTooManyRequests, "rate limit exceeded")

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
	if got := w.Body.String(); got != "{\"error\":\"rate limit exceeded\"}\n" {
		t.Errorf("body = %q", got)
	}
}
