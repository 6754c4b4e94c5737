// Package question defines the practice item stored in the bank and the
// pure helpers that grade, normalize and group questions.
package question

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Kind tags how a question is presented. The set is open: tags the
// application doesn't know are kept as-is and rendered as choice questions.
type Kind string

const (
	KindMCQ      Kind = "MCQ"
	KindPhrase   Kind = "PHRASE"
	KindError    Kind = "ERROR"
	KindTF       Kind = "TF"
	KindSpelling Kind = "spelling_correction"
)

// FreeResponse reports whether the learner types the answer instead of
// picking an option.
func (k Kind) FreeResponse() bool {
	return k == KindSpelling
}

// Format describes how the learner provides an answer.
type Format int

const (
	// FormatChoice means the learner picks one of Options.
	FormatChoice Format = iota

	// FormatFreeText means the learner types the answer.
	FormatFreeText
)

func (f Format) String() string {
	switch f {
	case FormatChoice:
		return "choice"
	case FormatFreeText:
		return "free-text"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DefaultCategory is assigned to questions saved without a category.
const DefaultCategory = "General"

// Question is a single assessable item in the bank.
type Question struct {
	ID           string   `json:"id" yaml:"id"`
	Kind         Kind     `json:"type" yaml:"type"`
	Text         string   `json:"question" yaml:"question"`
	Options      []string `json:"options,omitempty" yaml:"options,omitempty"`
	Answer       string   `json:"answer" yaml:"answer"`
	Category     string   `json:"category" yaml:"category"`
	OriginalText string   `json:"original_text,omitempty" yaml:"original_text,omitempty"`
	Explanation  string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	IsAI         bool     `json:"is_ai,omitempty" yaml:"is_ai,omitempty"`
}

// Format returns the presentation format for the question's kind.
func (q Question) Format() Format {
	if q.Kind.FreeResponse() {
		return FormatFreeText
	}
	return FormatChoice
}

// Choices returns the options shown to the learner. A true/false question
// saved without options gets the implicit pair.
func (q Question) Choices() []string {
	if q.Kind == KindTF && len(q.Options) == 0 {
		return []string{"True", "False"}
	}
	return q.Options
}

// Grade compares a learner's answer with the correct answer. Only the
// learner's side is trimmed; both sides are compared case-insensitively.
func Grade(userAnswer, correct string) bool {
	return strings.ToLower(strings.TrimSpace(userAnswer)) == strings.ToLower(correct)
}

// Normalize trims every field and fills in defaults.
func Normalize(q Question) Question {
	q.ID = strings.TrimSpace(q.ID)
	q.Kind = Kind(strings.TrimSpace(string(q.Kind)))
	if q.Kind == "" {
		q.Kind = KindMCQ
	}
	q.Text = strings.TrimSpace(q.Text)
	q.Answer = strings.TrimSpace(q.Answer)
	q.Category = strings.TrimSpace(q.Category)
	if q.Category == "" {
		q.Category = DefaultCategory
	}
	q.OriginalText = strings.TrimSpace(q.OriginalText)
	q.Explanation = strings.TrimSpace(q.Explanation)

	if q.Kind.FreeResponse() {
		q.Options = nil
		return q
	}

	var opts []string
	for _, o := range q.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	q.Options = opts
	if q.Kind == KindTF && len(q.Options) == 0 {
		q.Options = []string{"True", "False"}
	}
	return q
}

// NewID builds an identifier such as "ai_1700000000000_3". A negative index
// yields the short form "user_1700000000000".
func NewID(prefix string, now time.Time, index int) string {
	if index < 0 {
		return fmt.Sprintf("%s_%d", prefix, now.UnixMilli())
	}
	return fmt.Sprintf("%s_%d_%d", prefix, now.UnixMilli(), index)
}

// ID prefixes used by each insertion source.
const (
	PrefixUser  = "user"
	PrefixCloud = "cloud"
	PrefixAI    = "ai"
	PrefixOCR   = "ocr"
)

// CategoryCount is a category name with the number of questions in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories groups questions by category, sorted by name.
func Categories(qs []Question) []CategoryCount {
	counts := make(map[string]int)
	for _, q := range qs {
		counts[categoryOf(q)]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FilterByCategory returns the questions in category, preserving order.
func FilterByCategory(qs []Question, category string) []Question {
	var out []Question
	for _, q := range qs {
		if categoryOf(q) == category {
			out = append(out, q)
		}
	}
	return out
}

func categoryOf(q Question) string {
	if q.Category == "" {
		return DefaultCategory
	}
	return q.Category
}
