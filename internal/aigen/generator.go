// Package aigen turns LLM output into bank questions: similar-question
// generation, single-question analysis and worksheet OCR.
package aigen

import (
	"context"
	"errors"

	"github.com/abhisek/wordwise/internal/question"
)

// Generator produces questions with an LLM. Results are never written to
// the bank here; callers append Batch.Questions themselves.
type Generator interface {
	// Similar writes new questions modelled on the first few base
	// questions of a category.
	Similar(ctx context.Context, base []question.Question, category string) (*Batch, error)

	// Analyze suggests metadata for a question the parent has typed in.
	Analyze(ctx context.Context, text string) (*Analysis, error)

	// Extract reads the questions printed on a worksheet photo.
	Extract(ctx context.Context, img Image) (*Batch, error)
}

// Batch is the validated output of one generation call.
type Batch struct {
	Questions []question.Question
	Dropped   []Dropped
}

// Dropped is a generated item that failed validation.
type Dropped struct {
	Index  int
	Text   string
	Reason string
}

// Analysis is partial metadata for a single question. Empty fields mean
// the model had no suggestion.
type Analysis struct {
	Kind        question.Kind
	Options     []string
	Answer      string
	Explanation string
	Category    string
}

// Apply fills the empty fields of q from the analysis.
func (a *Analysis) Apply(q question.Question) question.Question {
	if a == nil {
		return q
	}
	if q.Kind == "" {
		q.Kind = a.Kind
	}
	if len(q.Options) == 0 {
		q.Options = append([]string(nil), a.Options...)
	}
	if q.Answer == "" {
		q.Answer = a.Answer
	}
	if q.Explanation == "" {
		q.Explanation = a.Explanation
	}
	if q.Category == "" {
		q.Category = a.Category
	}
	return q
}

var (
	// ErrNoBase is returned by Similar when the category has no questions.
	ErrNoBase = errors.New("no base questions to generate from")

	// ErrNoValidQuestions means the model answered but every item failed
	// validation.
	ErrNoValidQuestions = errors.New("no valid questions in AI output")
)
