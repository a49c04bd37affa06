package result

import (
	"sort"
	"time"

	"github.com/citizenprep/backend/internal/domain/testset"
)

// Summary is a projection over every TestResult of one test type.
// It is rebuilt from the live set on each write, never merged.
type Summary struct {
	TotalAttempts        int `json:"total_attempts" bson:"total_attempts"`
	TotalPassed          int `json:"total_passed" bson:"total_passed"`
	TotalFailed          int `json:"total_failed" bson:"total_failed"`
	UniqueTestsAttempted int `json:"unique_tests_attempted" bson:"unique_tests_attempted"`
	UniqueTestsPassed    int `json:"unique_tests_passed" bson:"unique_tests_passed"`
	UniqueTestsFailed    int `json:"unique_tests_failed" bson:"unique_tests_failed"`
	AverageScore         int `json:"average_score" bson:"average_score"`
}

// Summarize recomputes the summary of results.
func Summarize(results []TestResult) Summary {
	var s Summary
	if len(results) == 0 {
		return s
	}

	seen := make(map[int]struct{}, len(results))
	totalScore := 0
	for _, r := range results {
		s.TotalAttempts += r.AttemptCount
		if r.Passed {
			s.TotalPassed++
		} else {
			s.TotalFailed++
		}
		seen[r.TestID] = struct{}{}
		totalScore += r.ScorePercent
	}
	s.UniqueTestsAttempted = len(seen)
	s.UniqueTestsPassed = s.TotalPassed
	s.UniqueTestsFailed = s.TotalFailed
	s.AverageScore = roundDiv(totalScore, len(results))
	return s
}

// Record is everything persisted for one user and test type.
type Record struct {
	UserID    string           `json:"user_id" bson:"user_id"`
	TestType  testset.TestType `json:"test_type" bson:"test_type"`
	Results   []TestResult     `json:"results" bson:"results"`
	Summary   Summary          `json:"summary" bson:"summary"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// NewRecord returns an empty record for userID and t.
func NewRecord(userID string, t testset.TestType) *Record {
	return &Record{UserID: userID, TestType: t}
}

// Find returns the result stored for testID.
func (r *Record) Find(testID int) (TestResult, bool) {
	for _, res := range r.Results {
		if res.TestID == testID {
			return res, true
		}
	}
	return TestResult{}, false
}

// Apply merges latest into the result for its test, replacing it, and
// rebuilds the summary. The record's Results slice is replaced rather than
// written in place, so readers of the previous slice never see a partial
// update. It returns the merged result.
func (r *Record) Apply(latest TestResult) TestResult {
	results := make([]TestResult, 0, len(r.Results)+1)
	var merged TestResult
	found := false
	for _, res := range r.Results {
		if res.TestID == latest.TestID && !found {
			existing := res
			merged = Merge(&existing, latest)
			results = append(results, merged)
			found = true
			continue
		}
		results = append(results, res)
	}
	if !found {
		merged = Merge(nil, latest)
		results = append(results, merged)
		sort.Slice(results, func(i, j int) bool { return results[i].TestID < results[j].TestID })
	}

	r.Results = results
	r.Summary = Summarize(results)
	r.UpdatedAt = latest.LastAttempted
	return merged
}
