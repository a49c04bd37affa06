package question_test

import (
	"errors"
	"testing"

	"github.com/citizenprep/backend/internal/domain/question"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    question.Category
		wantErr bool
	}{
		{"people", question.CategoryPeople, false},
		{" Values ", question.CategoryValues, false},
		{"GOVERNMENT", question.CategoryGovernment, false},
		{"beliefs", question.CategoryBeliefs, false},
		{"history", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := question.ParseCategory(tt.in)
			if tt.wantErr {
				if !errors.Is(err, question.ErrUnknownCategory) {
					t.Fatalf("expected ErrUnknownCategory, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNew_Valid(t *testing.T) {
	q, err := question.New("Who is the head of state?", []string{"The King", "The Prime Minister"}, "The King", question.CategoryGovernment, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Options) != 2 {
		t.Errorf("expected 2 options, got %d", len(q.Options))
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		options []string
		answer  string
		cat     question.Category
		wantErr error
	}{
		{"empty text", " ", []string{"a"}, "a", question.CategoryPeople, question.ErrInvalidQuestion},
		{"no options", "Q", nil, "a", question.CategoryPeople, question.ErrInvalidQuestion},
		{"too many options", "Q", []string{"a", "b", "c", "d"}, "a", question.CategoryPeople, question.ErrInvalidQuestion},
		{"answer not in options", "Q", []string{"a", "b"}, "c", question.CategoryPeople, question.ErrInvalidQuestion},
		{"unknown category", "Q", []string{"a"}, "a", question.Category("history"), question.ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := question.New(tt.text, tt.options, tt.answer, tt.cat, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestIsCorrect_IgnoresCaseAndWhitespace(t *testing.T) {
	q := question.Question{CorrectAnswer: "Canberra"}

	if !q.IsCorrect("  canberra ") {
		t.Error("expected trimmed lower-case answer to match")
	}
	if q.IsCorrect("Sydney") {
		t.Error("expected wrong answer not to match")
	}
}
