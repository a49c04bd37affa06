package result_test

import (
	"testing"
	"time"

	"github.com/citizenprep/backend/internal/domain/question"
	"github.com/citizenprep/backend/internal/domain/result"
	"github.com/citizenprep/backend/internal/domain/testset"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func at(minute int) time.Time {
	return time.Date(2025, 3, 1, 10, minute, 0, 0, time.UTC)
}

func scored(testID, score int, passed bool, when time.Time) result.TestResult {
	return result.TestResult{
		TestID:          testID,
		AttemptCount:    1,
		CorrectAnswers:  score * testset.Size / 100,
		ScorePercent:    score,
		ValuesCorrect:   5,
		ValuesPercent:   100,
		TimeUsedSeconds: 600,
		Passed:          passed,
		LastAttempted:   when,
	}
}

func TestMerge_FirstAttemptVerbatim(t *testing.T) {
	latest := scored(3, 80, true, at(0))
	latest.AttemptCount = 0
	latest.FeedbackRating = intPtr(4)

	merged := result.Merge(nil, latest)

	if merged.AttemptCount != 1 {
		t.Errorf("expected attempt count 1, got %d", merged.AttemptCount)
	}
	if merged.ScorePercent != 80 || merged.TestID != 3 || !merged.Passed {
		t.Errorf("expected latest values to be kept, got %+v", merged)
	}
	if merged.FeedbackRating == nil || *merged.FeedbackRating != 4 {
		t.Error("expected feedback rating to be kept")
	}
	if len(merged.History) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(merged.History))
	}
}

func TestMerge_WeightedMean(t *testing.T) {
	existing := result.TestResult{
		TestID:          1,
		AttemptCount:    2,
		CorrectAnswers:  12,
		ScorePercent:    60,
		PeoplePercent:   40,
		TimeUsedSeconds: 900,
		Passed:          false,
	}
	latest := scored(1, 90, true, at(5))
	latest.PeoplePercent = 100

	merged := result.Merge(&existing, latest)

	if merged.AttemptCount != 3 {
		t.Errorf("expected attempt count 3, got %d", merged.AttemptCount)
	}
	if merged.ScorePercent != 70 {
		t.Errorf("expected score 70, got %d", merged.ScorePercent)
	}
	// (12*2 + 18) / 3 = 14
	if merged.CorrectAnswers != 14 {
		t.Errorf("expected 14 correct answers, got %d", merged.CorrectAnswers)
	}
	if merged.PeoplePercent != 60 {
		t.Errorf("expected people percent 60, got %d", merged.PeoplePercent)
	}
	if merged.TimeUsedSeconds != 800 {
		t.Errorf("expected time 800, got %d", merged.TimeUsedSeconds)
	}
	if !merged.Passed {
		t.Error("expected passed to follow the latest attempt")
	}
	if !merged.LastAttempted.Equal(at(5)) {
		t.Errorf("expected last attempted %v, got %v", at(5), merged.LastAttempted)
	}
	if existing.AttemptCount != 2 {
		t.Error("expected existing record to be left untouched")
	}
}

func TestMerge_Rounding(t *testing.T) {
	existing := result.TestResult{TestID: 1, AttemptCount: 1, ScorePercent: 75}
	latest := scored(1, 80, true, at(1))

	// (75 + 80) / 2 = 77.5
	if got := result.Merge(&existing, latest).ScorePercent; got != 78 {
		t.Errorf("expected 78, got %d", got)
	}
}

func TestMerge_PassedOverwrittenWithFailure(t *testing.T) {
	existing := scored(1, 100, true, at(0))
	latest := scored(1, 95, false, at(1))

	if result.Merge(&existing, latest).Passed {
		t.Error("expected latest failure to overwrite earlier pass")
	}
}

func TestMerge_SparseFeedback(t *testing.T) {
	existing := scored(1, 80, true, at(0))
	existing.FeedbackRating = intPtr(5)
	existing.FeedbackComment = strPtr("great")

	merged := result.Merge(&existing, scored(1, 70, false, at(1)))
	if merged.FeedbackRating == nil || *merged.FeedbackRating != 5 {
		t.Errorf("expected rating 5 to be retained, got %v", merged.FeedbackRating)
	}
	if merged.FeedbackComment == nil || *merged.FeedbackComment != "great" {
		t.Errorf("expected comment to be retained, got %v", merged.FeedbackComment)
	}

	latest := scored(1, 70, false, at(2))
	latest.FeedbackRating = intPtr(2)
	merged = result.Merge(&merged, latest)
	if *merged.FeedbackRating != 2 {
		t.Errorf("expected rating 2, got %d", *merged.FeedbackRating)
	}
	if *merged.FeedbackComment != "great" {
		t.Errorf("expected comment to be retained, got %q", *merged.FeedbackComment)
	}
}

func TestMerge_BlankCommentKeepsStored(t *testing.T) {
	existing := scored(1, 80, true, at(0))
	existing.FeedbackComment = strPtr("great")

	for _, comment := range []string{"", "   "} {
		latest := scored(1, 70, false, at(1))
		latest.FeedbackComment = strPtr(comment)

		merged := result.Merge(&existing, latest)
		if merged.FeedbackComment == nil || *merged.FeedbackComment != "great" {
			t.Errorf("comment %q: expected stored comment to be retained, got %v", comment, merged.FeedbackComment)
		}
	}

	first := scored(2, 70, false, at(2))
	first.FeedbackComment = strPtr("")
	if got := result.Merge(nil, first).FeedbackComment; got != nil {
		t.Errorf("expected blank first comment to be dropped, got %q", *got)
	}
}

func TestMerge_HistoryBounded(t *testing.T) {
	r := result.Merge(nil, scored(1, 50, false, at(0)))
	for i := 1; i < result.HistoryLimit+5; i++ {
		r = result.Merge(&r, scored(1, 50+i, false, at(i)))
	}

	if len(r.History) != result.HistoryLimit {
		t.Fatalf("expected %d history entries, got %d", result.HistoryLimit, len(r.History))
	}
	last := r.History[len(r.History)-1]
	if last.ScorePercent != 50+result.HistoryLimit+4 {
		t.Errorf("expected newest snapshot last, got %d", last.ScorePercent)
	}
	if r.AttemptCount != result.HistoryLimit+5 {
		t.Errorf("expected %d attempts, got %d", result.HistoryLimit+5, r.AttemptCount)
	}
}

func TestCategoryScore(t *testing.T) {
	var r result.TestResult
	for i, cat := range question.Categories {
		r.SetCategoryScore(cat, i, i*20)
	}
	for i, cat := range question.Categories {
		correct, percent := r.CategoryScore(cat)
		if correct != i || percent != i*20 {
			t.Errorf("%s: expected (%d, %d), got (%d, %d)", cat, i, i*20, correct, percent)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct{ part, whole, want int }{
		{20, 20, 100},
		{15, 20, 75},
		{1, 3, 33},
		{2, 3, 67},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := result.Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%d, %d): expected %d, got %d", tt.part, tt.whole, tt.want, got)
		}
	}
}
