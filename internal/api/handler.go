package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/AksChougule/lairn/internal/domain/quiz"
	"github.com/AksChougule/lairn/internal/service"
	"github.com/AksChougule/lairn/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	quiz   *service.QuizService
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(q *service.QuizService, logger *slog.Logger) *Handler {
	return &Handler{
		quiz:   q,
		logger: logger,
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Session not found"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, ErrorResponse{Detail: detail})
}

type validator interface {
	Validate() error
}

// decodeJSON reads the request body into v. Malformed JSON is a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// decodeAndValidate decodes v and runs its Validate method. Validation
// failures are a 422.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service and store errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		respondError(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, quiz.ErrInvalidConfig),
		errors.Is(err, service.ErrAnswerRequired),
		errors.Is(err, service.ErrOptionRequired),
		errors.Is(err, service.ErrOptionOutOfRange):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrMisconfiguredQuestion):
		h.logger.Error("misconfigured question", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		h.logger.Error("service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

// isoTime renders t as ISO-8601 UTC with a Z suffix.
func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func isoTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := isoTime(*t)
	return &s
}
