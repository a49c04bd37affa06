// Package metrics exposes Prometheus instrumentation for the practice engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	testSetsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "practice_testsets_generated_total",
			Help: "Total number of test set generations",
		},
		[]string{"test_type"},
	)

	// outcome: passed/failed
	attemptsGraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "practice_attempts_graded_total",
			Help: "Total number of graded attempts",
		},
		[]string{"test_type", "outcome"},
	)

	attemptScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "practice_attempt_score_percent",
			Help:    "Score percentage of graded attempts",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"test_type"},
	)

	// stage: load/grade/persist/publish
	submissionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "practice_submission_errors_total",
			Help: "Total number of failed submission stages",
		},
		[]string{"test_type", "stage"},
	)
)

func TestSetsGenerated(testType string) {
	testSetsGenerated.WithLabelValues(testType).Inc()
}

// AttemptGraded records the outcome and score of one attempt.
func AttemptGraded(testType string, passed bool, score int) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	attemptsGraded.WithLabelValues(testType, outcome).Inc()
	attemptScore.WithLabelValues(testType).Observe(float64(score))
}

func SubmissionError(testType, stage string) {
	submissionErrors.WithLabelValues(testType, stage).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
