package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/services"
)

// withURLParam attaches a chi route context so handlers see the path
// parameter the router would have extracted.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"email": "required"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "Email already registered"}, http.StatusConflict, "CONFLICT"},
		{"not found", &services.NotFoundError{Message: "Deck not found"}, http.StatusNotFound, "NOT_FOUND"},
		{"empty deck", &services.EmptyDeckError{Message: "Deck is empty"}, http.StatusBadRequest, "EMPTY_DECK"},
		{"unauthorized", &services.UnauthorizedError{Message: "Invalid credentials"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", &services.ForbiddenError{Message: "Access denied"}, http.StatusForbidden, "FORBIDDEN"},
		{"rate limited", &services.RateLimitError{Message: "Too many requests"}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			handleServiceError(w, r, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestHandleServiceError_ValidationFieldsIncluded(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	handleServiceError(w, r, &services.ValidationError{Fields: map[string]string{
		"user_answer": "Missing required fields",
	}})

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Fields["user_answer"] != "Missing required fields" {
		t.Errorf("expected field errors in response, got %v", resp.Error.Fields)
	}
}

func TestErrorResp_PropagatesRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "req-42")

	resp := errorResp("NOT_FOUND", "Deck not found", r)

	if resp.Error.RequestID != "req-42" {
		t.Errorf("expected request id 'req-42', got %q", resp.Error.RequestID)
	}
}

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	w := httptest.NewRecorder()

	writeJSON(w, http.StatusCreated, map[string]string{"message": "ok"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected application/json, got %q", got)
	}
}

func TestQuizStart_RejectsMalformedDeckID(t *testing.T) {
	h := NewQuizHandler(nil, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/quiz/not-a-uuid", nil)
	r = withURLParam(r, "deckID", "not-a-uuid")

	h.Start(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Message != "Invalid deck ID" {
		t.Errorf("expected deck id rejection, got %q", resp.Error.Message)
	}
}

func TestSubmitAnswer_RejectsMalformedBody(t *testing.T) {
	h := NewQuizHandler(nil, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/quiz/9b2e6f0a-1111-4222-8333-000000000000", strings.NewReader("{not json"))
	r = withURLParam(r, "flashcardID", "9b2e6f0a-1111-4222-8333-000000000000")

	h.SubmitAnswer(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Message != "Invalid request body" {
		t.Errorf("expected body rejection, got %q", resp.Error.Message)
	}
}

func TestHandleLookupError_DistinguishesMissingRowFromFailure(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	handleLookupError(w, r, pgx.ErrNoRows, "Deck not found")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing row, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handleLookupError(w, r, errors.New("connection refused"), "Deck not found")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for infrastructure failure, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
}
