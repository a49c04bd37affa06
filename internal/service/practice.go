package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/citizenprep/backend/internal/cache"
	"github.com/citizenprep/backend/internal/domain/attempt"
	"github.com/citizenprep/backend/internal/domain/result"
	"github.com/citizenprep/backend/internal/domain/stats"
	"github.com/citizenprep/backend/internal/domain/testset"
	"github.com/citizenprep/backend/internal/event"
	"github.com/citizenprep/backend/internal/metrics"
	"github.com/citizenprep/backend/internal/store"
	"github.com/citizenprep/backend/internal/worker"
)

// Viewer is the caller a request is served for.
type Viewer struct {
	UserID  string
	Premium bool
}

// Options tunes a PracticeService. Zero values fall back to defaults.
type Options struct {
	FreeLimit int
	SetTTL    time.Duration
	Workers   int
	// Rand seeds each randomized generation.
	Rand *rand.Rand
	Now  func() time.Time
}

// PracticeService generates practice tests, grades attempts and reports
// statistics. Sequential-policy tests are generated once at construction;
// randomized tests are generated per user and cached.
type PracticeService struct {
	store  store.Store
	cache  cache.SetCache
	events event.Publisher
	logger *slog.Logger

	pools     testset.Pools
	fixed     map[testset.TestType][]testset.TestSet
	count     int
	freeLimit int
	ttl       time.Duration
	now       func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPracticeService generates the fixed test types from pools. It fails
// with testset.ErrEmptyPool when any category has no questions.
func NewPracticeService(
	pools testset.Pools,
	s store.Store,
	c cache.SetCache,
	pub event.Publisher,
	logger *slog.Logger,
	opts Options,
) (*PracticeService, error) {
	if opts.FreeLimit <= 0 {
		opts.FreeLimit = testset.DefaultFreeTestLimit
	}
	if opts.SetTTL <= 0 {
		opts.SetTTL = 24 * time.Hour
	}
	if opts.Workers <= 0 {
		opts.Workers = len(testset.TestTypes)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if pub == nil {
		pub = event.NopPublisher{}
	}

	ps := &PracticeService{
		store:     s,
		cache:     c,
		events:    pub,
		logger:    logger,
		pools:     pools.Clone(),
		fixed:     make(map[testset.TestType][]testset.TestSet),
		freeLimit: opts.FreeLimit,
		ttl:       opts.SetTTL,
		now:       opts.Now,
		rng:       opts.Rand,
	}

	if err := ps.generateFixed(opts.Workers); err != nil {
		return nil, err
	}
	return ps, nil
}

type generation struct {
	sets []testset.TestSet
	err  error
}

func (s *PracticeService) generateFixed(workers int) error {
	jobs := make(map[string]worker.Job[generation])
	for _, t := range testset.TestTypes {
		if t.Policy() != testset.PolicySequential {
			continue
		}
		jobs[string(t)] = func() generation {
			sets, err := testset.Assemble(s.pools.Clone(), testset.PolicySequential, nil)
			return generation{sets: sets, err: err}
		}
	}

	for id, g := range worker.Run(workers, jobs) {
		if g.err != nil {
			return fmt.Errorf("generate %s tests: %w", id, g.err)
		}
		t := testset.TestType(id)
		s.fixed[t] = g.sets
		s.count = len(g.sets)
		metrics.TestSetsGenerated(id)
		s.logger.Info("generated tests", "test_type", id, "count", len(g.sets))
	}
	return nil
}

func (s *PracticeService) access(v Viewer) testset.Access {
	return testset.Access{Premium: v.Premium, FreeLimit: s.freeLimit}
}

// Count is the number of tests generated for every type.
func (s *PracticeService) Count() int {
	return s.count
}

// TestSets returns the tests of type t as presented to userID. A randomized
// generation is only returned once it is cached, so it can be graded later.
func (s *PracticeService) TestSets(ctx context.Context, userID string, t testset.TestType) ([]testset.TestSet, error) {
	if sets, ok := s.fixed[t]; ok {
		return sets, nil
	}
	if t != testset.TestTypeRandom {
		return nil, fmt.Errorf("%w: %q", testset.ErrUnknownTestType, t)
	}

	key := cache.Key(userID, t)
	sets, err := s.cache.Get(ctx, key)
	if err == nil {
		return sets, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("read cached tests", "user_id", userID, "test_type", t, "error", err)
	}

	sets, err = testset.Assemble(s.pools.Clone(), testset.PolicyRandomized, s.newRand())
	if err != nil {
		return nil, fmt.Errorf("generate %s tests: %w", t, err)
	}
	metrics.TestSetsGenerated(string(t))

	if err := s.cache.Set(ctx, key, sets, s.ttl); err != nil {
		s.logger.Error("cache tests", "user_id", userID, "test_type", t, "error", err)
		return nil, fmt.Errorf("cache %s tests: %w", t, err)
	}
	return sets, nil
}

// shownSets returns the tests of type t that userID was shown, without
// generating new ones.
func (s *PracticeService) shownSets(ctx context.Context, userID string, t testset.TestType) ([]testset.TestSet, error) {
	if sets, ok := s.fixed[t]; ok {
		return sets, nil
	}
	if t != testset.TestTypeRandom {
		return nil, fmt.Errorf("%w: %q", testset.ErrUnknownTestType, t)
	}

	sets, err := s.cache.Get(ctx, cache.Key(userID, t))
	if errors.Is(err, cache.ErrMiss) {
		return nil, fmt.Errorf("%w: %s tests of %s", testset.ErrGenerationExpired, t, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("read cached %s tests: %w", t, err)
	}
	return sets, nil
}

func (s *PracticeService) newRand() *rand.Rand {
	s.mu.Lock()
	seed := s.rng.Int63()
	s.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}

// Listing is the catalogue of one test type for a viewer.
type Listing struct {
	TestType testset.TestType `json:"test_type"`
	Tests    []testset.Tile   `json:"tests"`
	Summary  *result.Summary  `json:"summary,omitempty"`
}

// List returns every test of type t with its lock state and the viewer's
// summary for the type, when one exists.
func (s *PracticeService) List(ctx context.Context, v Viewer, t testset.TestType) (Listing, error) {
	l := Listing{TestType: t, Tests: s.access(v).List(t, s.count)}

	rec, err := s.store.GetRecord(ctx, v.UserID, t)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return Listing{}, err
	default:
		l.Summary = &rec.Summary
	}
	return l, nil
}

// Open returns the test testID of type t if the viewer may take it.
func (s *PracticeService) Open(ctx context.Context, v Viewer, t testset.TestType, testID int) (testset.TestSet, error) {
	acc, err := s.checkAccess(v, t, testID)
	if err != nil {
		return testset.TestSet{}, err
	}

	sets, err := s.TestSets(ctx, v.UserID, t)
	if err != nil {
		return testset.TestSet{}, err
	}
	return acc.Open(t, sets, testID)
}

// checkAccess rejects unknown and locked tests before any sets are generated.
func (s *PracticeService) checkAccess(v Viewer, t testset.TestType, testID int) (testset.Access, error) {
	acc := s.access(v)
	if testID < 1 || testID > s.count {
		return acc, fmt.Errorf("%w: %s test %d", testset.ErrTestNotFound, t, testID)
	}
	if !acc.CanOpen(t, testID-1) {
		return acc, fmt.Errorf("%w: %s test %d", testset.ErrLocked, t, testID)
	}
	return acc, nil
}

// Submission is the outcome of grading one attempt. Scored and Review are
// set as soon as the attempt is graded, even when persisting fails.
type Submission struct {
	Scored    result.TestResult `json:"scored"`
	Review    []attempt.Item    `json:"review"`
	Result    result.TestResult `json:"result"`
	Summary   result.Summary    `json:"summary"`
	Persisted bool              `json:"persisted"`
}

// Submit grades a against the test the viewer was shown and merges it into
// the viewer's stored results. It fails with testset.ErrGenerationExpired
// when that randomized test is no longer cached.
func (s *PracticeService) Submit(ctx context.Context, v Viewer, t testset.TestType, a attempt.Attempt) (Submission, error) {
	acc, err := s.checkAccess(v, t, a.TestID)
	if err != nil {
		return Submission{}, err
	}
	sets, err := s.shownSets(ctx, v.UserID, t)
	if err != nil {
		metrics.SubmissionError(string(t), "load")
		return Submission{}, err
	}
	set, err := acc.Open(t, sets, a.TestID)
	if err != nil {
		return Submission{}, err
	}

	scored, err := attempt.Grade(set, a, s.now().UTC())
	if err != nil {
		metrics.SubmissionError(string(t), "grade")
		return Submission{}, err
	}
	review, err := attempt.Review(set, a)
	if err != nil {
		return Submission{}, err
	}
	metrics.AttemptGraded(string(t), scored.Passed, scored.ScorePercent)

	sub := Submission{Scored: scored, Review: review}

	var merged result.TestResult
	rec, err := s.store.UpdateRecord(ctx, v.UserID, t, func(rec *result.Record) error {
		merged = rec.Apply(scored)
		return nil
	})
	if err != nil {
		metrics.SubmissionError(string(t), "persist")
		s.logger.Error("persist attempt",
			"user_id", v.UserID,
			"test_type", t,
			"test_id", a.TestID,
			"error", err,
		)
		return sub, err
	}

	sub.Result = merged
	sub.Summary = rec.Summary
	sub.Persisted = true

	s.logger.Info("graded attempt",
		"user_id", v.UserID,
		"test_type", t,
		"test_id", a.TestID,
		"score", scored.ScorePercent,
		"passed", scored.Passed,
	)

	payload := event.AttemptGradedEvent{
		UserID:       v.UserID,
		TestType:     string(t),
		TestID:       merged.TestID,
		ScorePercent: scored.ScorePercent,
		Passed:       scored.Passed,
		AttemptCount: merged.AttemptCount,
		AttemptedAt:  scored.LastAttempted,
	}
	if err := s.events.Publish(ctx, event.AttemptGraded, payload); err != nil {
		metrics.SubmissionError(string(t), "publish")
		s.logger.Warn("publish attempt event", "user_id", v.UserID, "test_type", t, "error", err)
	}
	return sub, nil
}

// TestStats reports the statistics of one test for userID.
func (s *PracticeService) TestStats(ctx context.Context, userID string, t testset.TestType, testID int) (stats.TestStats, error) {
	if testID < 1 || testID > s.count {
		return stats.TestStats{}, fmt.Errorf("%w: %s test %d", testset.ErrTestNotFound, t, testID)
	}

	rec, err := s.store.GetRecord(ctx, userID, t)
	if err != nil {
		return stats.TestStats{}, err
	}
	r, ok := rec.Find(testID)
	if !ok {
		return stats.TestStats{}, fmt.Errorf("%w: no attempts at %s test %d", store.ErrNotFound, t, testID)
	}
	return stats.ForTest(r), nil
}

// TypeReport combines the statistics and summary of one test type.
type TypeReport struct {
	Stats   stats.TypeStats `json:"stats"`
	Summary result.Summary  `json:"summary"`
}

// TypeStats reports the statistics of every attempted test of type t.
func (s *PracticeService) TypeStats(ctx context.Context, userID string, t testset.TestType) (TypeReport, error) {
	rec, err := s.store.GetRecord(ctx, userID, t)
	if err != nil {
		return TypeReport{}, err
	}
	ts, ok := stats.ForType(rec.Results)
	if !ok {
		return TypeReport{}, store.ErrNotFound
	}
	return TypeReport{Stats: ts, Summary: rec.Summary}, nil
}
