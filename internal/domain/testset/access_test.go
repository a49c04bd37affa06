package testset_test

import (
	"errors"
	"testing"

	"github.com/citizenprep/backend/internal/domain/testset"
)

func TestParseTestType(t *testing.T) {
	for _, tt := range testset.TestTypes {
		got, err := testset.ParseTestType(string(tt))
		if err != nil || got != tt {
			t.Errorf("expected %q, got %q (%v)", tt, got, err)
		}
	}

	if _, err := testset.ParseTestType("dashboard"); !errors.Is(err, testset.ErrUnknownTestType) {
		t.Errorf("expected ErrUnknownTestType, got %v", err)
	}
}

func TestTestType_Policy(t *testing.T) {
	if testset.TestTypeGuided.Policy() != testset.PolicySequential {
		t.Error("expected guided tests to use the sequential policy")
	}
	if testset.TestTypeRandom.Policy() != testset.PolicyRandomized {
		t.Error("expected random tests to use the randomized policy")
	}
}

func TestAccess_Open(t *testing.T) {
	sets := make([]testset.TestSet, 8)
	for i := range sets {
		sets[i].ID = i + 1
	}

	tests := []struct {
		name    string
		access  testset.Access
		typ     testset.TestType
		id      int
		wantErr error
	}{
		{"free first test", testset.Access{FreeLimit: 5}, testset.TestTypeSequential, 1, nil},
		{"free fifth test", testset.Access{FreeLimit: 5}, testset.TestTypeGuided, 5, nil},
		{"free sixth test", testset.Access{FreeLimit: 5}, testset.TestTypeGuided, 6, testset.ErrLocked},
		{"free random", testset.Access{FreeLimit: 5}, testset.TestTypeRandom, 1, testset.ErrLocked},
		{"premium random", testset.Access{Premium: true}, testset.TestTypeRandom, 8, nil},
		{"out of range", testset.Access{Premium: true}, testset.TestTypeSequential, 9, testset.ErrTestNotFound},
		{"zero id", testset.Access{Premium: true}, testset.TestTypeSequential, 0, testset.ErrTestNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := tt.access.Open(tt.typ, sets, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if set.ID != tt.id {
				t.Errorf("expected test %d, got %d", tt.id, set.ID)
			}
		})
	}
}

func TestAccess_List(t *testing.T) {
	tiles := testset.Access{FreeLimit: 5}.List(testset.TestTypeSequential, 7)

	if len(tiles) != 7 {
		t.Fatalf("expected 7 tiles, got %d", len(tiles))
	}
	for i, tile := range tiles {
		wantLocked := i >= 5
		if tile.Locked != wantLocked {
			t.Errorf("tile %d: expected locked=%v", tile.ID, wantLocked)
		}
	}
}
