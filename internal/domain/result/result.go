package result

import (
	"math"
	"time"

	"github.com/citizenprep/backend/internal/domain/question"
)

// HistoryLimit caps the raw attempt snapshots kept next to the running aggregate.
const HistoryLimit = 10

// TestResult is the running aggregate of every attempt a user made at one test.
// Numeric fields hold the weighted mean over AttemptCount attempts.
type TestResult struct {
	TestID         int `json:"test_id" bson:"test_id"`
	AttemptCount   int `json:"attempt_count" bson:"attempt_count"`
	CorrectAnswers int `json:"correct_answers" bson:"correct_answers"`
	ScorePercent   int `json:"score_percent" bson:"score_percent"`

	ValuesCorrect     int `json:"values_correct" bson:"values_correct"`
	GovernmentCorrect int `json:"government_correct" bson:"government_correct"`
	BeliefsCorrect    int `json:"beliefs_correct" bson:"beliefs_correct"`
	PeopleCorrect     int `json:"people_correct" bson:"people_correct"`

	ValuesPercent     int `json:"values_percent" bson:"values_percent"`
	GovernmentPercent int `json:"government_percent" bson:"government_percent"`
	BeliefsPercent    int `json:"beliefs_percent" bson:"beliefs_percent"`
	PeoplePercent     int `json:"people_percent" bson:"people_percent"`

	TimeUsedSeconds int  `json:"time_used_seconds" bson:"time_used_seconds"`
	Passed          bool `json:"passed" bson:"passed"`

	FeedbackRating  *int    `json:"feedback_rating,omitempty" bson:"feedback_rating,omitempty"`
	FeedbackComment *string `json:"feedback_comment,omitempty" bson:"feedback_comment,omitempty"`

	LastAttempted time.Time  `json:"last_attempted" bson:"last_attempted"`
	History       []Snapshot `json:"history,omitempty" bson:"history,omitempty"`
}

// Snapshot is the raw outcome of a single attempt.
type Snapshot struct {
	ScorePercent    int       `json:"score_percent" bson:"score_percent"`
	TimeUsedSeconds int       `json:"time_used_seconds" bson:"time_used_seconds"`
	Passed          bool      `json:"passed" bson:"passed"`
	AttemptedAt     time.Time `json:"attempted_at" bson:"attempted_at"`
}

// CategoryScore returns the correct count and percent recorded for cat.
func (r TestResult) CategoryScore(cat question.Category) (correct, percent int) {
	switch cat {
	case question.CategoryPeople:
		return r.PeopleCorrect, r.PeoplePercent
	case question.CategoryValues:
		return r.ValuesCorrect, r.ValuesPercent
	case question.CategoryGovernment:
		return r.GovernmentCorrect, r.GovernmentPercent
	case question.CategoryBeliefs:
		return r.BeliefsCorrect, r.BeliefsPercent
	}
	return 0, 0
}

// SetCategoryScore records the correct count and percent for cat.
func (r *TestResult) SetCategoryScore(cat question.Category, correct, percent int) {
	switch cat {
	case question.CategoryPeople:
		r.PeopleCorrect, r.PeoplePercent = correct, percent
	case question.CategoryValues:
		r.ValuesCorrect, r.ValuesPercent = correct, percent
	case question.CategoryGovernment:
		r.GovernmentCorrect, r.GovernmentPercent = correct, percent
	case question.CategoryBeliefs:
		r.BeliefsCorrect, r.BeliefsPercent = correct, percent
	}
}

func (r TestResult) snapshot() Snapshot {
	return Snapshot{
		ScorePercent:    r.ScorePercent,
		TimeUsedSeconds: r.TimeUsedSeconds,
		Passed:          r.Passed,
		AttemptedAt:     r.LastAttempted,
	}
}

// Percent returns round(100 * part / whole), or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return roundDiv(100*part, whole)
}

func roundDiv(num, den int) int {
	return int(math.Round(float64(num) / float64(den)))
}
