// Package history lists recent practice runs for the parent.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/stats"
	"github.com/abhisek/wordwise/internal/store"
	"github.com/abhisek/wordwise/internal/ui/components"
	"github.com/abhisek/wordwise/internal/ui/layout"
	"github.com/abhisek/wordwise/internal/ui/theme"
)

// sessionLimit caps how many runs are listed.
const sessionLimit = 50

type sessionsLoadedMsg struct {
	sessions []store.SessionSummary
	err      error
}

// HistoryScreen lists past runs, newest first.
type HistoryScreen struct {
	env      *screen.Env
	sessions []store.SessionSummary
	selected int
	loaded   bool
	err      error
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen.
func New(env *screen.Env) *HistoryScreen {
	return &HistoryScreen{env: env}
}

func (s *HistoryScreen) Init() tea.Cmd {
	history := s.env.History
	return func() tea.Msg {
		sessions, err := history.Sessions(context.Background(), sessionLimit)
		return sessionsLoadedMsg{sessions: sessions, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return s.env.T(i18n.RecentRuns)
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: s.env.T(i18n.Back)},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		s.loaded = true
		s.sessions = msg.sessions
		s.err = msg.err
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sections := []string{theme.Title.Render("🕘 " + s.env.T(i18n.RecentRuns)), ""}

	switch {
	case s.err != nil:
		sections = append(sections, theme.Incorrect.Render(s.env.Err(s.err)))
	case !s.loaded:
		sections = append(sections, theme.Hint.Render(s.env.T(i18n.Loading)))
	case len(s.sessions) == 0:
		sections = append(sections, theme.Hint.Render(s.env.T(i18n.NoRecords)))
	default:
		// Keep the selected row on screen when the list is taller than the card.
		rows := max(height-8, 1)
		start := max(0, s.selected-rows+1)
		end := min(len(s.sessions), start+rows)
		for i := start; i < end; i++ {
			sections = append(sections, renderRow(s.sessions[i], i == s.selected))
		}
	}

	content := components.Card(strings.Join(sections, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderRow(sess store.SessionSummary, selected bool) string {
	pct := stats.CategoryStat{Attempted: sess.Total, Correct: sess.Correct}
	line := fmt.Sprintf("%s  %-12s %2d/%-2d  %3d%%",
		sess.StartedAt.Format("Jan 02 15:04"), sess.Category, sess.Correct, sess.Total, pct.DisplayAccuracy())

	prefix := "  "
	style := lipgloss.NewStyle().Foreground(accuracyColor(pct))
	if selected {
		prefix = "▸ "
		style = style.Bold(true)
	}
	return style.Render(prefix + line)
}

func accuracyColor(c stats.CategoryStat) color.Color {
	switch {
	case c.Weak():
		return theme.Error
	case c.Correct == c.Attempted:
		return theme.Success
	default:
		return theme.Text
	}
}
