package question

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes one problem with a question.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the structural rules every stored question must satisfy.
// All problems are reported, joined with errors.Join.
func (q Question) Validate() error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, &ValidationError{Field: field, Message: msg})
	}

	if strings.TrimSpace(q.ID) == "" {
		add("id", "is empty")
	}
	if strings.TrimSpace(q.Text) == "" {
		add("question", "is empty")
	}
	if strings.TrimSpace(q.Answer) == "" {
		add("answer", "is empty")
	}

	switch q.Format() {
	case FormatFreeText:
		if len(q.Options) > 0 {
			add("options", fmt.Sprintf("must be empty for %s questions", q.Kind))
		}
	case FormatChoice:
		opts := q.Choices()
		if len(opts) == 0 {
			add("options", fmt.Sprintf("%s questions need at least one option", q.Kind))
			break
		}
		if q.Answer == "" {
			break
		}
		matches := 0
		for _, o := range opts {
			if strings.EqualFold(strings.TrimSpace(o), strings.TrimSpace(q.Answer)) {
				matches++
			}
		}
		switch matches {
		case 0:
			add("answer", fmt.Sprintf("%q is not one of the options", q.Answer))
		case 1:
		default:
			add("options", fmt.Sprintf("answer %q matches %d options", q.Answer, matches))
		}
	}

	return errors.Join(errs...)
}

// IsValidationError reports whether err carries at least one ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
