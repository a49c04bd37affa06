package result

import "strings"

// Merge folds latest, a freshly graded single attempt, into existing.
//
// Every numeric field becomes round((E*n + V) / (n+1)) where n is the
// existing attempt count. Passed always follows the latest attempt, feedback
// is only replaced when latest supplies it (a blank comment counts as not
// supplied), and LastAttempted is taken from
// latest. A nil existing record yields latest with AttemptCount 1.
// Neither argument is modified.
func Merge(existing *TestResult, latest TestResult) TestResult {
	if existing == nil {
		merged := latest
		merged.AttemptCount = 1
		if blank(merged.FeedbackComment) {
			merged.FeedbackComment = nil
		}
		merged.History = []Snapshot{latest.snapshot()}
		return merged
	}

	n := existing.AttemptCount
	if n < 1 {
		n = 1
	}
	mean := func(e, v int) int {
		return roundDiv(e*n+v, n+1)
	}

	merged := TestResult{
		TestID:         existing.TestID,
		AttemptCount:   n + 1,
		CorrectAnswers: mean(existing.CorrectAnswers, latest.CorrectAnswers),
		ScorePercent:   mean(existing.ScorePercent, latest.ScorePercent),

		ValuesCorrect:     mean(existing.ValuesCorrect, latest.ValuesCorrect),
		GovernmentCorrect: mean(existing.GovernmentCorrect, latest.GovernmentCorrect),
		BeliefsCorrect:    mean(existing.BeliefsCorrect, latest.BeliefsCorrect),
		PeopleCorrect:     mean(existing.PeopleCorrect, latest.PeopleCorrect),

		ValuesPercent:     mean(existing.ValuesPercent, latest.ValuesPercent),
		GovernmentPercent: mean(existing.GovernmentPercent, latest.GovernmentPercent),
		BeliefsPercent:    mean(existing.BeliefsPercent, latest.BeliefsPercent),
		PeoplePercent:     mean(existing.PeoplePercent, latest.PeoplePercent),

		TimeUsedSeconds: mean(existing.TimeUsedSeconds, latest.TimeUsedSeconds),
		Passed:          latest.Passed,

		FeedbackRating:  existing.FeedbackRating,
		FeedbackComment: existing.FeedbackComment,
		LastAttempted:   latest.LastAttempted,
		History:         appendHistory(existing.History, latest.snapshot()),
	}
	if latest.FeedbackRating != nil {
		merged.FeedbackRating = latest.FeedbackRating
	}
	if !blank(latest.FeedbackComment) {
		merged.FeedbackComment = latest.FeedbackComment
	}
	return merged
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func appendHistory(history []Snapshot, s Snapshot) []Snapshot {
	if len(history) >= HistoryLimit {
		history = history[len(history)-HistoryLimit+1:]
	}
	out := make([]Snapshot, 0, len(history)+1)
	out = append(out, history...)
	return append(out, s)
}
