package aigen

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordwise/internal/question"
)

// Validator checks one generated question. DedupValidator keeps its state
// in Input, so validators themselves are stateless.
type Validator interface {
	// Name is a short identifier such as "structural" or "dedup".
	Name() string

	Validate(q question.Question, in *Input) *ValidationError
}

// Input is the context shared by the validators for one batch.
type Input struct {
	// Category requested by the caller, if any.
	Category string

	// Base holds questions the output must not repeat.
	Base []question.Question

	seen map[string]bool
}

// ValidationError describes why a generated question was dropped.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Limits enforced by StructuralValidator.
const (
	MaxTextLen        = 500
	MaxExplanationLen = 1000
	MaxOptions        = 6
)

var knownKinds = map[question.Kind]bool{
	question.KindMCQ:      true,
	question.KindPhrase:   true,
	question.KindError:    true,
	question.KindTF:       true,
	question.KindSpelling: true,
}

// StructuralValidator checks lengths, required fields and the kind tag.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q question.Question, _ *Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}
	switch {
	case q.Text == "":
		return fail("question is empty")
	case len(q.Text) > MaxTextLen:
		return fail("question exceeds %d characters", MaxTextLen)
	case q.Answer == "":
		return fail("answer is empty")
	case len(q.Explanation) > MaxExplanationLen:
		return fail("explanation exceeds %d characters", MaxExplanationLen)
	case !knownKinds[q.Kind]:
		return fail("unknown type %q", q.Kind)
	case len(q.Options) > MaxOptions:
		return fail("%d options, at most %d allowed", len(q.Options), MaxOptions)
	}
	return nil
}

// ConsistencyValidator applies the bank's own rules (answer among options
// and so on).
type ConsistencyValidator struct{}

func (v *ConsistencyValidator) Name() string { return "consistency" }

func (v *ConsistencyValidator) Validate(q question.Question, _ *Input) *ValidationError {
	if err := q.Validate(); err != nil {
		return &ValidationError{Validator: v.Name(), Message: strings.ReplaceAll(err.Error(), "\n", "; ")}
	}
	return nil
}

// DedupValidator rejects questions whose text repeats a base question or an
// earlier item of the same batch.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(q question.Question, in *Input) *ValidationError {
	if in.seen == nil {
		in.seen = make(map[string]bool, len(in.Base))
		for _, b := range in.Base {
			in.seen[dedupKey(b.Text)] = true
		}
	}
	key := dedupKey(q.Text)
	if in.seen[key] {
		return &ValidationError{Validator: v.Name(), Message: "duplicate question"}
	}
	in.seen[key] = true
	return nil
}

// dedupKey folds case and collapses whitespace.
func dedupKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
