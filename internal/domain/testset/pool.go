package testset

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/citizenprep/backend/internal/domain/question"
)

// QuestionsPerCategory is the per-test quota drawn from every category.
const QuestionsPerCategory = 5

// Size is the number of questions in every test set.
const Size = QuestionsPerCategory * len(question.Categories)

var ErrEmptyPool = errors.New("empty question pool")

// EmptyPoolError names the category whose pool had no records.
type EmptyPoolError struct {
	Category question.Category
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("empty question pool for category %q", e.Category)
}

func (e *EmptyPoolError) Is(target error) bool {
	return target == ErrEmptyPool
}

// Pools holds the question records of each category.
type Pools map[question.Category][]question.Question

// Clone returns a copy whose slices can be reordered without touching p.
func (p Pools) Clone() Pools {
	out := make(Pools, len(p))
	for cat, qs := range p {
		out[cat] = append([]question.Question(nil), qs...)
	}
	return out
}

// TargetLength is the common pool length after balancing: the largest pool
// rounded up to a whole number of per-test quotas.
func TargetLength(pools Pools) (int, error) {
	longest := 0
	for _, cat := range question.Categories {
		n := len(pools[cat])
		if n == 0 {
			return 0, &EmptyPoolError{Category: cat}
		}
		if n > longest {
			longest = n
		}
	}
	groups := (longest + QuestionsPerCategory - 1) / QuestionsPerCategory
	return groups * QuestionsPerCategory, nil
}

// Balance expands every category pool by repetition to TargetLength.
// With a nil rng the repetition keeps source order; otherwise each expanded
// pool is shuffled with rng. The input pools are never modified.
func Balance(pools Pools, rng *rand.Rand) (Pools, error) {
	n, err := TargetLength(pools)
	if err != nil {
		return nil, err
	}

	balanced := make(Pools, len(question.Categories))
	for _, cat := range question.Categories {
		expanded := repeatToLength(pools[cat], n)
		if rng != nil {
			shuffle(rng, expanded)
		}
		balanced[cat] = expanded
	}
	return balanced, nil
}

func repeatToLength(src []question.Question, n int) []question.Question {
	out := make([]question.Question, 0, n)
	for len(out) < n {
		remaining := n - len(out)
		if remaining > len(src) {
			remaining = len(src)
		}
		out = append(out, src[:remaining]...)
	}
	return out
}

func shuffle[T any](rng *rand.Rand, s []T) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
