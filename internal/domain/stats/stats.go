package stats

import (
	"math"
	"time"

	"github.com/citizenprep/backend/internal/domain/question"
	"github.com/citizenprep/backend/internal/domain/result"
)

// CategoryAverages holds an average percent per category.
type CategoryAverages struct {
	People     int `json:"people"`
	Values     int `json:"values"`
	Government int `json:"government"`
	Beliefs    int `json:"beliefs"`
}

func (c *CategoryAverages) set(cat question.Category, v int) {
	switch cat {
	case question.CategoryPeople:
		c.People = v
	case question.CategoryValues:
		c.Values = v
	case question.CategoryGovernment:
		c.Government = v
	case question.CategoryBeliefs:
		c.Beliefs = v
	}
}

// TestStats describes a user's performance on one test.
//
// Averages come from the running aggregate. Best score, best time, times at
// best score and pass rate come from the bounded attempt history; a record
// without history falls back to the aggregate as its only data point.
type TestStats struct {
	LastAttempt        result.TestResult `json:"last_attempt"`
	TotalAttempts      int               `json:"total_attempts"`
	BestScore          int               `json:"best_score"`
	AverageScore       int               `json:"average_score"`
	TimesBestScore     int               `json:"times_best_score"`
	AverageTimeSeconds int               `json:"average_time_seconds"`
	BestTimeSeconds    int               `json:"best_time_seconds"`
	CategoryAverages   CategoryAverages  `json:"category_averages"`
	PassRate           int               `json:"pass_rate"`
	LastAttempted      time.Time         `json:"last_attempted"`
	HistoryWindow      int               `json:"history_window"`
}

// ForTest derives the statistics of a single stored result.
func ForTest(r result.TestResult) TestStats {
	s := TestStats{
		LastAttempt:        r,
		TotalAttempts:      r.AttemptCount,
		AverageScore:       r.ScorePercent,
		AverageTimeSeconds: r.TimeUsedSeconds,
		LastAttempted:      r.LastAttempted,
		HistoryWindow:      len(r.History),
	}
	for _, cat := range question.Categories {
		_, percent := r.CategoryScore(cat)
		s.CategoryAverages.set(cat, percent)
	}

	if len(r.History) == 0 {
		s.BestScore = r.ScorePercent
		s.TimesBestScore = r.AttemptCount
		s.BestTimeSeconds = r.TimeUsedSeconds
		if r.Passed {
			s.PassRate = 100
		}
		return s
	}

	s.BestScore = r.History[0].ScorePercent
	s.BestTimeSeconds = r.History[0].TimeUsedSeconds
	passed := 0
	for _, snap := range r.History {
		if snap.ScorePercent > s.BestScore {
			s.BestScore = snap.ScorePercent
		}
		if snap.TimeUsedSeconds < s.BestTimeSeconds {
			s.BestTimeSeconds = snap.TimeUsedSeconds
		}
		if snap.Passed {
			passed++
		}
	}
	for _, snap := range r.History {
		if snap.ScorePercent == s.BestScore {
			s.TimesBestScore++
		}
	}
	s.PassRate = result.Percent(passed, len(r.History))
	return s
}

// TypeStats describes a user's performance across every test of one type.
type TypeStats struct {
	TestsAttempted   int              `json:"tests_attempted"`
	TotalAttempts    int              `json:"total_attempts"`
	AverageScore     int              `json:"average_score"`
	PassRate         int              `json:"pass_rate"`
	CategoryAverages CategoryAverages `json:"category_averages"`
	LastAttempted    time.Time        `json:"last_attempted"`
}

// ForType derives statistics across results. It reports false when there
// are no results to describe.
func ForType(results []result.TestResult) (TypeStats, bool) {
	if len(results) == 0 {
		return TypeStats{}, false
	}

	s := TypeStats{TestsAttempted: len(results)}
	scoreSum, passed := 0, 0
	categorySums := make(map[question.Category]int, len(question.Categories))
	for _, r := range results {
		s.TotalAttempts += r.AttemptCount
		scoreSum += r.ScorePercent
		if r.Passed {
			passed++
		}
		for _, cat := range question.Categories {
			_, percent := r.CategoryScore(cat)
			categorySums[cat] += percent
		}
		if r.LastAttempted.After(s.LastAttempted) {
			s.LastAttempted = r.LastAttempted
		}
	}

	n := len(results)
	s.AverageScore = mean(scoreSum, n)
	s.PassRate = result.Percent(passed, n)
	for _, cat := range question.Categories {
		s.CategoryAverages.set(cat, mean(categorySums[cat], n))
	}
	return s, true
}

func mean(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
