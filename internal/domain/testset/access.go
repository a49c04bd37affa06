package testset

import (
	"errors"
	"fmt"
)

// TestType is the access policy under which a test is presented.
type TestType string

const (
	TestTypeGuided     TestType = "guided"
	TestTypeSequential TestType = "sequential"
	TestTypeRandom     TestType = "random"
)

// TestTypes lists every supported test type.
var TestTypes = []TestType{TestTypeGuided, TestTypeSequential, TestTypeRandom}

var (
	ErrUnknownTestType = errors.New("unknown test type")
	ErrTestNotFound    = errors.New("test not found")
	ErrLocked          = errors.New("test requires a premium subscription")
)

// ErrGenerationExpired means the randomized tests a user was shown are no
// longer available to grade against.
var ErrGenerationExpired = errors.New("test generation expired")

func ParseTestType(s string) (TestType, error) {
	t := TestType(s)
	switch t {
	case TestTypeGuided, TestTypeSequential, TestTypeRandom:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTestType, s)
}

// Policy returns the assembly policy used to build tests of this type.
func (t TestType) Policy() Policy {
	if t == TestTypeRandom {
		return PolicyRandomized
	}
	return PolicySequential
}

// DefaultFreeTestLimit is how many sequential-policy tests a free user may open.
const DefaultFreeTestLimit = 5

// Access decides which generated tests a user may open.
type Access struct {
	Premium   bool
	FreeLimit int
}

// CanOpen reports whether the test at 0-based position idx is available.
// Randomized tests are premium only; for the other types free users get the
// first FreeLimit tests by position.
func (a Access) CanOpen(t TestType, idx int) bool {
	if a.Premium {
		return true
	}
	if t.Policy() == PolicyRandomized {
		return false
	}
	return idx < a.FreeLimit
}

// Open returns the test with the given 1-based id.
func (a Access) Open(t TestType, sets []TestSet, testID int) (TestSet, error) {
	idx := testID - 1
	if idx < 0 || idx >= len(sets) {
		return TestSet{}, fmt.Errorf("%w: %s test %d", ErrTestNotFound, t, testID)
	}
	if !a.CanOpen(t, idx) {
		return TestSet{}, fmt.Errorf("%w: %s test %d", ErrLocked, t, testID)
	}
	return sets[idx], nil
}

// Tile is a listing entry for one test.
type Tile struct {
	ID     int  `json:"id"`
	Locked bool `json:"locked"`
}

// List returns a tile for each of count tests.
func (a Access) List(t TestType, count int) []Tile {
	tiles := make([]Tile, count)
	for i := range tiles {
		tiles[i] = Tile{ID: i + 1, Locked: !a.CanOpen(t, i)}
	}
	return tiles
}
