package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/library"
	"github.com/abhisek/wordwise/internal/parent"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/store"
	"github.com/abhisek/wordwise/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that want Esc delivered to them
// instead of the default pop.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Env carries the collaborators every screen draws on. It is shared by
// pointer so a language switch on one screen reaches all of them.
type Env struct {
	Bank     store.BankRepo
	History  store.HistoryRepo
	Settings store.SettingsRepo
	Guard    *parent.Guard
	Library  *library.Service
	Sampler  *quiz.Sampler
	Logger   *zap.Logger
	Lang     i18n.Lang
	Now      func() time.Time
}

// T looks up key in the current language.
func (e *Env) T(key i18n.Key) string {
	return i18n.T(e.Lang, key)
}

// Tf formats key in the current language.
func (e *Env) Tf(key i18n.Key, args ...any) string {
	return i18n.Tf(e.Lang, key, args...)
}

// Err localizes err for display.
func (e *Env) Err(err error) string {
	return i18n.Error(e.Lang, err)
}

// Log returns the logger, never nil.
func (e *Env) Log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Clock returns the current time from Now, or time.Now.
func (e *Env) Clock() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
