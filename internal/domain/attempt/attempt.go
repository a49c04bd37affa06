package attempt

import (
	"errors"
	"fmt"
	"time"

	"github.com/citizenprep/backend/internal/domain/question"
	"github.com/citizenprep/backend/internal/domain/result"
	"github.com/citizenprep/backend/internal/domain/testset"
)

// TestDuration is the time allowed for one practice test.
const TestDuration = 45 * time.Minute

// PassMark is the minimum overall score, in percent, needed to pass.
const PassMark = 75

var (
	ErrShapeMismatch   = errors.New("answers do not match the test's questions")
	ErrInvalidFeedback = errors.New("feedback rating must be between 1 and 5")
)

// ShapeMismatchError reports an answer count that differs from the question count.
type ShapeMismatchError struct {
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("expected %d answers, got %d", e.Want, e.Got)
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// Attempt is one submitted run through a test. Answers align by position with
// the test's questions; a nil entry is an unanswered question.
type Attempt struct {
	TestID          int
	Answers         []*string
	TimeUsedSeconds int
	FeedbackRating  *int
	FeedbackComment *string
}

// Grade scores a against set. Unanswered questions count as incorrect.
// The attempt passes only when every values question is correct and the
// overall score reaches PassMark.
func Grade(set testset.TestSet, a Attempt, at time.Time) (result.TestResult, error) {
	if len(a.Answers) != len(set.Questions) {
		return result.TestResult{}, &ShapeMismatchError{Want: len(set.Questions), Got: len(a.Answers)}
	}
	if a.FeedbackRating != nil && (*a.FeedbackRating < 1 || *a.FeedbackRating > 5) {
		return result.TestResult{}, ErrInvalidFeedback
	}

	correct := make(map[question.Category]int, len(question.Categories))
	total := make(map[question.Category]int, len(question.Categories))
	totalCorrect := 0
	for i, q := range set.Questions {
		total[q.Category]++
		if a.Answers[i] != nil && q.IsCorrect(*a.Answers[i]) {
			correct[q.Category]++
			totalCorrect++
		}
	}

	r := result.TestResult{
		TestID:          set.ID,
		AttemptCount:    1,
		CorrectAnswers:  totalCorrect,
		ScorePercent:    result.Percent(totalCorrect, len(set.Questions)),
		TimeUsedSeconds: clampTime(a.TimeUsedSeconds),
		FeedbackRating:  a.FeedbackRating,
		FeedbackComment: a.FeedbackComment,
		LastAttempted:   at,
	}
	for _, cat := range question.Categories {
		r.SetCategoryScore(cat, correct[cat], result.Percent(correct[cat], total[cat]))
	}

	allValuesCorrect := correct[question.CategoryValues] == total[question.CategoryValues]
	r.Passed = allValuesCorrect && r.ScorePercent >= PassMark
	return r, nil
}

func clampTime(seconds int) int {
	limit := int(TestDuration / time.Second)
	if seconds < 0 {
		return 0
	}
	if seconds > limit {
		return limit
	}
	return seconds
}

// Item is the per-question outcome shown back to the user.
type Item struct {
	Question      string            `json:"question"`
	Category      question.Category `json:"category"`
	Answer        *string           `json:"answer"`
	CorrectAnswer string            `json:"correct_answer"`
	Correct       bool              `json:"correct"`
	Explanation   string            `json:"explanation,omitempty"`
}

// Review lists the outcome of each question of set for a.
func Review(set testset.TestSet, a Attempt) ([]Item, error) {
	if len(a.Answers) != len(set.Questions) {
		return nil, &ShapeMismatchError{Want: len(set.Questions), Got: len(a.Answers)}
	}
	items := make([]Item, len(set.Questions))
	for i, q := range set.Questions {
		items[i] = Item{
			Question:      q.Text,
			Category:      q.Category,
			Answer:        a.Answers[i],
			CorrectAnswer: q.CorrectAnswer,
			Correct:       a.Answers[i] != nil && q.IsCorrect(*a.Answers[i]),
			Explanation:   q.Explanation,
		}
	}
	return items, nil
}
