package question

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the four fixed question classifications.
type Category string

const (
	CategoryPeople     Category = "people"
	CategoryValues     Category = "values"
	CategoryGovernment Category = "government"
	CategoryBeliefs    Category = "beliefs"
)

// Categories lists every category in test block order.
var Categories = [...]Category{
	CategoryPeople,
	CategoryValues,
	CategoryGovernment,
	CategoryBeliefs,
}

// MaxOptions is the largest number of choices a question may offer.
const MaxOptions = 3

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidQuestion = errors.New("invalid question")
)

// ParseCategory maps a free-form tag onto the closed set of categories.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPeople, CategoryValues, CategoryGovernment, CategoryBeliefs:
		return true
	}
	return false
}

// Question is an immutable multiple-choice question record.
type Question struct {
	Text          string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer string   `json:"correct_answer" bson:"correct_answer"`
	Category      Category `json:"category" bson:"category"`
	Explanation   string   `json:"explanation,omitempty" bson:"explanation,omitempty"`
}

// New builds a validated Question.
func New(text string, options []string, correctAnswer string, category Category, explanation string) (Question, error) {
	q := Question{
		Text:          text,
		Options:       append([]string(nil), options...),
		CorrectAnswer: correctAnswer,
		Category:      category,
		Explanation:   explanation,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text cannot be empty", ErrInvalidQuestion)
	}
	if !q.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, q.Category)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: %q has no options", ErrInvalidQuestion, q.Text)
	}
	if len(q.Options) > MaxOptions {
		return fmt.Errorf("%w: %q has %d options, at most %d allowed", ErrInvalidQuestion, q.Text, len(q.Options), MaxOptions)
	}
	for _, opt := range q.Options {
		if q.IsCorrect(opt) {
			return nil
		}
	}
	return fmt.Errorf("%w: correct answer %q is not one of the options of %q", ErrInvalidQuestion, q.CorrectAnswer, q.Text)
}

// IsCorrect reports whether answer matches the correct answer,
// ignoring case and surrounding whitespace.
func (q Question) IsCorrect(answer string) bool {
	return Normalize(answer) == Normalize(q.CorrectAnswer)
}

func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
