package api

import (
	"errors"
	"net/http"

	"github.com/citizenprep/backend/internal/domain/attempt"
	"github.com/citizenprep/backend/internal/domain/question"
	"github.com/citizenprep/backend/internal/service"
	"github.com/citizenprep/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type QuestionResponse struct {
	Question string            `json:"question" example:"What are the colours of the flag?"`
	Options  []string          `json:"options"`
	Category question.Category `json:"category" example:"people"`
}

type TestResponse struct {
	ID              int                `json:"id" example:"1"`
	TestType        string             `json:"test_type" example:"guided"`
	DurationSeconds int                `json:"duration_seconds" example:"2700"`
	Questions       []QuestionResponse `json:"questions"`
}

type SubmitAttemptRequest struct {
	Answers         []*string `json:"answers"`
	TimeUsedSeconds int       `json:"time_used_seconds" example:"1260"`
	FeedbackRating  *int      `json:"feedback_rating,omitempty" example:"4"`
	FeedbackComment *string   `json:"feedback_comment,omitempty" example:"Clear questions"`
}

func (r *SubmitAttemptRequest) Validate() error {
	if r.Answers == nil {
		return errors.New("answers is required")
	}
	if r.TimeUsedSeconds < 0 {
		return errors.New("time_used_seconds must not be negative")
	}
	if r.FeedbackRating != nil && (*r.FeedbackRating < 1 || *r.FeedbackRating > 5) {
		return errors.New("feedback_rating must be between 1 and 5")
	}
	return nil
}

type SubmitAttemptResponse struct {
	service.Submission
	Warning string `json:"warning,omitempty" example:"result could not be saved"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listTests godoc
// @Summary      List tests of a type
// @Description  Returns every generated test of the type with its lock state and the caller's summary.
// @Tags         Tests
// @Produce      json
// @Param        testType   path      string  true   "guided, sequential or random"
// @Param        X-User-ID  header    string  true   "Caller id"
// @Param        X-Premium  header    bool    false  "Premium access"
// @Success      200        {object}  service.Listing
// @Failure      401        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /tests/{testType} [get]
func (h *Handler) listTests(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	t, ok := h.testType(w, r)
	if !ok {
		return
	}

	listing, err := h.practice.List(r.Context(), v, t)
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

// getTest godoc
// @Summary      Get a test
// @Description  Returns the questions of one test. Correct answers are not included.
// @Tags         Tests
// @Produce      json
// @Param        testType   path      string  true   "guided, sequential or random"
// @Param        testID     path      int     true   "1-based test id"
// @Param        X-User-ID  header    string  true   "Caller id"
// @Param        X-Premium  header    bool    false  "Premium access"
// @Success      200        {object}  TestResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      403        {object}  ErrorResponse  "premium only"
// @Failure      404        {object}  ErrorResponse
// @Router       /tests/{testType}/{testID} [get]
func (h *Handler) getTest(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	t, ok := h.testType(w, r)
	if !ok {
		return
	}
	id, ok := testID(w, r)
	if !ok {
		return
	}

	set, err := h.practice.Open(r.Context(), v, t, id)
	if h.handleError(w, err) {
		return
	}

	resp := TestResponse{
		ID:              set.ID,
		TestType:        string(t),
		DurationSeconds: int(attempt.TestDuration.Seconds()),
		Questions:       make([]QuestionResponse, len(set.Questions)),
	}
	for i, q := range set.Questions {
		resp.Questions[i] = QuestionResponse{
			Question: q.Text,
			Options:  q.Options,
			Category: q.Category,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// submitAttempt godoc
// @Summary      Submit an attempt
// @Description  Grades the answers, merges them into the caller's results and returns the scored attempt.
// @Description  When saving fails the scored attempt is still returned with persisted=false.
// @Tags         Tests
// @Accept       json
// @Produce      json
// @Param        testType   path      string                true   "guided, sequential or random"
// @Param        testID     path      int                   true   "1-based test id"
// @Param        X-User-ID  header    string                true   "Caller id"
// @Param        X-Premium  header    bool                  false  "Premium access"
// @Param        body       body      SubmitAttemptRequest  true   "Answers in question order, null when unanswered"
// @Success      200        {object}  SubmitAttemptResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      403        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      410        {object}  ErrorResponse  "randomized test expired"
// @Router       /tests/{testType}/{testID}/attempts [post]
func (h *Handler) submitAttempt(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	t, ok := h.testType(w, r)
	if !ok {
		return
	}
	id, ok := testID(w, r)
	if !ok {
		return
	}

	var req SubmitAttemptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sub, err := h.practice.Submit(r.Context(), v, t, attempt.Attempt{
		TestID:          id,
		Answers:         req.Answers,
		TimeUsedSeconds: req.TimeUsedSeconds,
		FeedbackRating:  req.FeedbackRating,
		FeedbackComment: req.FeedbackComment,
	})
	if errors.Is(err, store.ErrPersistence) {
		respondJSON(w, http.StatusOK, SubmitAttemptResponse{
			Submission: sub,
			Warning:    "result could not be saved",
		})
		return
	}
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SubmitAttemptResponse{Submission: sub})
}

// getTestStats godoc
// @Summary      Get statistics of one test
// @Tags         Stats
// @Produce      json
// @Param        testType   path      string  true  "guided, sequential or random"
// @Param        testID     path      int     true  "1-based test id"
// @Param        X-User-ID  header    string  true  "Caller id"
// @Success      200        {object}  stats.TestStats
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse  "not attempted"
// @Router       /tests/{testType}/{testID}/stats [get]
func (h *Handler) getTestStats(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	t, ok := h.testType(w, r)
	if !ok {
		return
	}
	id, ok := testID(w, r)
	if !ok {
		return
	}

	ts, err := h.practice.TestStats(r.Context(), v.UserID, t, id)
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, ts)
}

// getTypeStats godoc
// @Summary      Get statistics of a test type
// @Tags         Stats
// @Produce      json
// @Param        testType   path      string  true  "guided, sequential or random"
// @Param        X-User-ID  header    string  true  "Caller id"
// @Success      200        {object}  service.TypeReport
// @Failure      404        {object}  ErrorResponse  "not attempted"
// @Router       /tests/{testType}/stats [get]
func (h *Handler) getTypeStats(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	t, ok := h.testType(w, r)
	if !ok {
		return
	}

	report, err := h.practice.TypeStats(r.Context(), v.UserID, t)
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, report)
}
