package testset

import (
	"errors"
	"math/rand"

	"github.com/citizenprep/backend/internal/domain/question"
)

// Policy selects how balanced pools are assembled into test sets.
type Policy int

const (
	// PolicySequential produces the same sets, in category-block order, on every call.
	PolicySequential Policy = iota
	// PolicyRandomized shuffles pools, test order and question order.
	PolicyRandomized
)

func (p Policy) String() string {
	switch p {
	case PolicySequential:
		return "sequential"
	case PolicyRandomized:
		return "randomized"
	}
	return "unknown"
}

var ErrNoRandSource = errors.New("randomized policy requires a random source")

// TestSet is one fixed-size practice test. ID is its 1-based position in the
// generated sequence.
type TestSet struct {
	ID        int                 `json:"id"`
	Questions []question.Question `json:"questions"`
}

// CategoryCount returns how many questions of cat the set contains.
func (s TestSet) CategoryCount(cat question.Category) int {
	n := 0
	for _, q := range s.Questions {
		if q.Category == cat {
			n++
		}
	}
	return n
}

// Assemble balances pools and splits them into test sets of Size questions,
// QuestionsPerCategory from each category.
//
// The sequential policy ignores rng and is fully deterministic for the same
// ordered input. The randomized policy requires rng.
func Assemble(pools Pools, policy Policy, rng *rand.Rand) ([]TestSet, error) {
	var shuffler *rand.Rand
	if policy == PolicyRandomized {
		if rng == nil {
			return nil, ErrNoRandSource
		}
		shuffler = rng
	}

	balanced, err := Balance(pools, shuffler)
	if err != nil {
		return nil, err
	}

	groups := len(balanced[question.CategoryPeople]) / QuestionsPerCategory
	if groups == 0 {
		return nil, &EmptyPoolError{Category: question.CategoryPeople}
	}

	sets := make([]TestSet, groups)
	for i := 0; i < groups; i++ {
		qs := make([]question.Question, 0, Size)
		lo, hi := i*QuestionsPerCategory, (i+1)*QuestionsPerCategory
		for _, cat := range question.Categories {
			qs = append(qs, balanced[cat][lo:hi]...)
		}
		if shuffler != nil {
			shuffle(shuffler, qs)
		}
		sets[i] = TestSet{Questions: qs}
	}

	if shuffler != nil {
		shuffle(shuffler, sets)
	}
	for i := range sets {
		sets[i].ID = i + 1
	}
	return sets, nil
}
