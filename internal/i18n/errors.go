package i18n

import (
	"errors"

	"github.com/abhisek/wordwise/internal/llm"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/sheets"
)

var errorKeys = []struct {
	err error
	key Key
}{
	{sheets.ErrMissingSettings, SyncMissing},
	{sheets.ErrPermissionDenied, SyncDenied},
	{sheets.ErrSheetNotFound, SyncNotFound},
	{sheets.ErrNoData, SyncNoData},
	{sheets.ErrNoValidRows, SyncNoValid},
	{quiz.ErrNoQuestions, NoQuestions},
	{quiz.ErrBlankAnswer, BlankAnswer},
	{llm.ErrNotConfigured, AINotConfigured},
}

// Error returns a localized message for the errors users can act on and
// err.Error() for everything else.
func Error(lang Lang, err error) string {
	if err == nil {
		return ""
	}
	for _, ek := range errorKeys {
		if errors.Is(err, ek.err) {
			return T(lang, ek.key)
		}
	}
	return err.Error()
}
