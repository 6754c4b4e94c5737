// Package bank is the parent's question bank manager.
package bank

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/paginator"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/sheets"
	"github.com/abhisek/wordwise/internal/ui/components"
	"github.com/abhisek/wordwise/internal/ui/layout"
	"github.com/abhisek/wordwise/internal/ui/theme"
)

const perPage = 6

type action int

const (
	actionNone action = iota
	actionDelete
	actionClear
	actionSync
)

type loadedMsg struct {
	questions []question.Question
	err       error
}

type mutatedMsg struct {
	status string
	err    error
}

// BankScreen lists the bank a page at a time and applies parent actions.
type BankScreen struct {
	env       *screen.Env
	questions []question.Question
	cursor    int
	pager     paginator.Model
	spinner   spinner.Model

	pending  action
	busy     bool
	busyText i18n.Key
	status   string
	err      error
}

var _ screen.Screen = (*BankScreen)(nil)
var _ screen.KeyHintProvider = (*BankScreen)(nil)
var _ screen.EscapeHandler = (*BankScreen)(nil)

// New creates a BankScreen. Questions load in Init.
func New(env *screen.Env) *BankScreen {
	p := paginator.New(paginator.WithPerPage(perPage))
	p.Type = paginator.Dots
	p.ActiveDot = lipgloss.NewStyle().Foreground(theme.Primary).Render("●")
	p.InactiveDot = lipgloss.NewStyle().Foreground(theme.Border).Render("○")
	return &BankScreen{
		env:     env,
		pager:   p,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

func (b *BankScreen) Init() tea.Cmd {
	return b.load()
}

func (b *BankScreen) Title() string {
	return b.env.T(i18n.ManageBank)
}

func (b *BankScreen) HandlesEscape() bool { return b.pending != actionNone }

func (b *BankScreen) KeyHints() []layout.KeyHint {
	if b.pending != actionNone {
		return []layout.KeyHint{{Key: "y", Description: "✓"}, {Key: "n", Description: "✗"}}
	}
	return []layout.KeyHint{
		{Key: "d", Description: "delete"},
		{Key: "D", Description: "clear"},
		{Key: "s", Description: "sync"},
		{Key: "Esc", Description: b.env.T(i18n.Back)},
	}
}

func (b *BankScreen) load() tea.Cmd {
	bank := b.env.Bank
	return func() tea.Msg {
		qs, err := bank.List(context.Background())
		return loadedMsg{questions: qs, err: err}
	}
}

func (b *BankScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		b.err = msg.err
		b.questions = msg.questions
		b.pager.TotalPages = 1
		b.pager.SetTotalPages(len(b.questions))
		if len(b.questions) == 0 {
			b.cursor, b.pager.Page = 0, 0
		} else {
			b.moveTo(min(b.cursor, len(b.questions)-1))
		}
		return b, nil

	case mutatedMsg:
		b.busy = false
		b.err = msg.err
		b.status = msg.status
		return b, b.load()

	case spinner.TickMsg:
		if !b.busy {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd

	case tea.KeyPressMsg:
		if b.busy {
			return b, nil
		}
		if b.pending != actionNone {
			return b.confirm(msg.String())
		}
		return b.handleKey(msg.String())
	}
	return b, nil
}

func (b *BankScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		b.moveTo(b.cursor - 1)
	case "down", "j":
		b.moveTo(b.cursor + 1)
	case "left", "h":
		b.pager.PrevPage()
		b.cursor = b.pager.Page * perPage
	case "right", "l":
		b.pager.NextPage()
		b.cursor = b.pager.Page * perPage
	case "d":
		if len(b.questions) > 0 {
			b.pending = actionDelete
		}
	case "D":
		if len(b.questions) > 0 {
			b.pending = actionClear
		}
	case "s":
		b.pending = actionSync
	}
	return b, nil
}

func (b *BankScreen) moveTo(i int) {
	if i < 0 || i >= len(b.questions) {
		return
	}
	b.cursor = i
	b.pager.Page = i / perPage
}

func (b *BankScreen) confirm(key string) (screen.Screen, tea.Cmd) {
	act := b.pending
	b.pending = actionNone
	if key != "y" {
		return b, nil
	}

	b.busy = true
	b.busyText = i18n.Loading
	b.status = ""
	var cmd tea.Cmd
	switch act {
	case actionDelete:
		cmd = b.deleteSelected()
	case actionClear:
		cmd = b.clear()
	case actionSync:
		b.busyText = i18n.Syncing
		cmd = b.sync()
	}
	return b, tea.Batch(b.spinner.Tick, cmd)
}

func (b *BankScreen) deleteSelected() tea.Cmd {
	bank := b.env.Bank
	id := b.questions[b.cursor].ID
	done := b.env.T(i18n.Deleted)
	return func() tea.Msg {
		if err := bank.Delete(context.Background(), id); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: done}
	}
}

func (b *BankScreen) clear() tea.Cmd {
	bank := b.env.Bank
	done := b.env.T(i18n.Cleared)
	return func() tea.Msg {
		if err := bank.Clear(context.Background()); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: done}
	}
}

// sync imports the sheet with the saved settings, replacing the bank.
func (b *BankScreen) sync() tea.Cmd {
	lib := b.env.Library
	env := b.env
	return func() tea.Msg {
		if lib == nil {
			return mutatedMsg{err: sheets.ErrMissingSettings}
		}
		ctx := context.Background()
		st, err := lib.SheetSettings(ctx, sheets.Settings{})
		if err != nil {
			return mutatedMsg{err: err}
		}
		res, err := lib.Sync(ctx, st)
		if err != nil {
			env.Log().Warn("tui sync failed", zap.Error(err))
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: env.Tf(i18n.SyncSuccess, len(res.Questions))}
	}
}

func (b *BankScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	inner := cw - 6

	sections := []string{theme.Title.Render("📚 " + b.env.T(i18n.ManageBank)), ""}
	if len(b.questions) == 0 {
		sections = append(sections, theme.Hint.Render(b.env.T(i18n.BankEmpty)))
	} else {
		start, end := b.pager.GetSliceBounds(len(b.questions))
		for i := start; i < end; i++ {
			sections = append(sections, renderRow(b.questions[i], i == b.cursor, inner))
		}
		sections = append(sections, "",
			components.Centered(b.pager.View(), inner),
			components.Centered(theme.Hint.Render(b.env.Tf(i18n.PageOf, b.pager.Page+1, b.pager.TotalPages)), inner),
		)
	}

	sections = append(sections, "")
	switch {
	case b.busy:
		sections = append(sections, b.spinner.View()+" "+b.env.T(b.busyText))
	case b.pending != actionNone:
		sections = append(sections, theme.Warning.Render(b.prompt()+" "+b.env.T(i18n.YesNo)))
	case b.err != nil:
		sections = append(sections, theme.Incorrect.Render(b.env.Err(b.err)))
	case b.status != "":
		sections = append(sections, theme.Correct.Render(b.status))
	}

	content := components.Card(strings.Join(sections, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (b *BankScreen) prompt() string {
	switch b.pending {
	case actionDelete:
		return b.env.T(i18n.ConfirmDelete)
	case actionClear:
		return b.env.T(i18n.ConfirmClearBank)
	case actionSync:
		return b.env.T(i18n.SyncReplaceWarn)
	}
	return ""
}

func renderRow(q question.Question, selected bool, width int) string {
	tag := fmt.Sprintf("[%s] ", q.Category)
	if q.IsAI {
		tag = "✨" + tag
	}
	text := truncate(tag+q.Text, width-4)
	if selected {
		return theme.Selected.Render("▸ " + text)
	}
	return theme.Unselected.Render("  " + text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
