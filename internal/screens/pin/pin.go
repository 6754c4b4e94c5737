// Package pin gates parent screens behind the parent PIN.
package pin

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/parent"
	"github.com/abhisek/wordwise/internal/router"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/ui/components"
	"github.com/abhisek/wordwise/internal/ui/layout"
	"github.com/abhisek/wordwise/internal/ui/theme"
)

type checkedMsg struct {
	err error
}

// PinScreen asks for the parent PIN and, once it matches, replaces itself
// with the screen built by next.
type PinScreen struct {
	env      *screen.Env
	next     func() screen.Screen
	input    components.TextInput
	checking bool
	errMsg   string
}

var _ screen.Screen = (*PinScreen)(nil)
var _ screen.KeyHintProvider = (*PinScreen)(nil)

// New creates a PinScreen guarding the screen produced by next.
func New(env *screen.Env, next func() screen.Screen) *PinScreen {
	return &PinScreen{
		env:   env,
		next:  next,
		input: components.NewSecretInput("••••", 8),
	}
}

func (p *PinScreen) Init() tea.Cmd {
	return p.input.Init()
}

func (p *PinScreen) Title() string {
	return p.env.T(i18n.EnterPIN)
}

func (p *PinScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "OK"},
		{Key: "Esc", Description: p.env.T(i18n.Back)},
	}
}

func (p *PinScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkedMsg:
		p.checking = false
		if msg.err == nil {
			target := p.next()
			return p, func() tea.Msg { return router.ReplaceScreenMsg{Screen: target} }
		}
		if errors.Is(msg.err, parent.ErrWrongPIN) {
			p.errMsg = p.env.T(i18n.WrongPIN)
		} else {
			p.errMsg = p.env.Err(msg.err)
		}
		p.input.Reset()
		return p, nil

	case tea.KeyPressMsg:
		if p.checking {
			return p, nil
		}
		if msg.String() == "enter" {
			pin := strings.TrimSpace(p.input.Value())
			if pin == "" {
				return p, nil
			}
			p.checking = true
			p.errMsg = ""
			return p, p.check(pin)
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// check runs the bcrypt comparison off the UI goroutine.
func (p *PinScreen) check(pin string) tea.Cmd {
	guard := p.env.Guard
	return func() tea.Msg {
		if guard == nil {
			return checkedMsg{}
		}
		return checkedMsg{err: guard.Check(context.Background(), pin)}
	}
}

func (p *PinScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	lines := []string{
		theme.Title.Render("🔒 " + p.env.T(i18n.EnterPIN)),
		"",
		p.input.View(),
	}
	switch {
	case p.checking:
		lines = append(lines, "", theme.Hint.Render(p.env.T(i18n.Loading)))
	case p.errMsg != "":
		lines = append(lines, "", theme.Incorrect.Render(p.errMsg))
	}
	card := components.Card(strings.Join(lines, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
