// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/citizenprep/backend/internal/domain/attempt"
	"github.com/citizenprep/backend/internal/domain/testset"
	"github.com/citizenprep/backend/internal/service"
	"github.com/citizenprep/backend/internal/store"
)

const (
	headerUserID  = "X-User-ID"
	headerPremium = "X-Premium"

	maxBodyBytes = 1 << 20
)

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	practice *service.PracticeService
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(practice *service.PracticeService, logger *slog.Logger) *Handler {
	return &Handler{
		practice: practice,
		logger:   logger,
	}
}

type validator interface {
	Validate() error
}

type ErrorResponse struct {
	Error string `json:"error" example:"test not found"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleError maps domain and store errors to HTTP responses. Returns true
// if an error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, testset.ErrTestNotFound),
		errors.Is(err, testset.ErrUnknownTestType):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, testset.ErrLocked):
		respondError(w, http.StatusForbidden, "test requires premium access")
	case errors.Is(err, testset.ErrGenerationExpired):
		respondError(w, http.StatusGone, "test expired, open it again to get a new one")
	case errors.Is(err, attempt.ErrShapeMismatch),
		errors.Is(err, attempt.ErrInvalidFeedback):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

// viewer reads the caller identity set by the upstream gateway.
func viewer(w http.ResponseWriter, r *http.Request) (service.Viewer, bool) {
	userID := strings.TrimSpace(r.Header.Get(headerUserID))
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing "+headerUserID+" header")
		return service.Viewer{}, false
	}
	premium, _ := strconv.ParseBool(r.Header.Get(headerPremium))
	return service.Viewer{UserID: userID, Premium: premium}, true
}

func (h *Handler) testType(w http.ResponseWriter, r *http.Request) (testset.TestType, bool) {
	t, err := testset.ParseTestType(r.PathValue("testType"))
	if h.handleError(w, err) {
		return "", false
	}
	return t, true
}

func testID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("testID"))
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "test id must be a positive integer")
		return 0, false
	}
	return id, true
}
