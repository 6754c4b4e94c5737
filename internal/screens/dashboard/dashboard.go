// Package dashboard shows the parent learning report.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/router"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/screens/history"
	"github.com/abhisek/wordwise/internal/stats"
	"github.com/abhisek/wordwise/internal/ui/components"
	"github.com/abhisek/wordwise/internal/ui/layout"
	"github.com/abhisek/wordwise/internal/ui/theme"
)

type reportMsg struct {
	report stats.Report
	err    error
}

type resetMsg struct {
	err error
}

// DashboardScreen renders stats.Report and offers a history reset.
type DashboardScreen struct {
	env        *screen.Env
	report     *stats.Report
	err        error
	confirming bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.EscapeHandler = (*DashboardScreen)(nil)

// New creates a DashboardScreen. The report loads in Init.
func New(env *screen.Env) *DashboardScreen {
	return &DashboardScreen{env: env}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return d.load()
}

func (d *DashboardScreen) Title() string {
	return d.env.T(i18n.DashboardTitle)
}

func (d *DashboardScreen) HandlesEscape() bool { return d.confirming }

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	if d.confirming {
		return []layout.KeyHint{{Key: "y", Description: "✓"}, {Key: "n", Description: "✗"}}
	}
	return []layout.KeyHint{
		{Key: "h", Description: d.env.T(i18n.RecentRuns)},
		{Key: "r", Description: d.env.T(i18n.ClearRecords)},
		{Key: "Esc", Description: d.env.T(i18n.Back)},
	}
}

func (d *DashboardScreen) load() tea.Cmd {
	history := d.env.History
	now := d.env.Clock()
	return func() tea.Msg {
		records, err := history.All(context.Background())
		if err != nil {
			return reportMsg{err: err}
		}
		return reportMsg{report: stats.BuildReport(records, now)}
	}
}

func (d *DashboardScreen) reset() tea.Cmd {
	history := d.env.History
	log := d.env.Log()
	return func() tea.Msg {
		err := history.Reset(context.Background())
		if err == nil {
			log.Info("history reset")
		}
		return resetMsg{err: err}
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		d.err = msg.err
		if msg.err == nil {
			r := msg.report
			d.report = &r
		} else {
			d.env.Log().Error("load report failed", zap.Error(msg.err))
		}
		return d, nil

	case resetMsg:
		if msg.err != nil {
			d.err = msg.err
			return d, nil
		}
		return d, d.load()

	case tea.KeyPressMsg:
		key := msg.String()
		if d.confirming {
			d.confirming = false
			if key == "y" {
				return d, d.reset()
			}
			return d, nil
		}
		switch key {
		case "r":
			if d.report != nil && !d.report.Snapshot.Empty() {
				d.confirming = true
			}
		case "h":
			next := history.New(d.env)
			return d, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case d.err != nil:
		body = theme.Incorrect.Render(d.env.Err(d.err))
	case d.report == nil:
		body = theme.Hint.Render(d.env.T(i18n.Loading))
	case d.report.Snapshot.Empty():
		body = theme.Hint.Render(d.env.T(i18n.NoRecords))
	default:
		body = d.renderReport(cw)
	}

	sections := []string{theme.Title.Render("📊 " + d.env.T(i18n.DashboardTitle)), "", body}
	if d.confirming {
		sections = append(sections, "", theme.Warning.Render(d.env.T(i18n.ConfirmReset)+" "+d.env.T(i18n.YesNo)))
	}
	content := components.Card(strings.Join(sections, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (d *DashboardScreen) renderReport(cw int) string {
	r := d.report
	inner := cw - 6

	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		statBox(d.env.T(i18n.OverallAccuracy), fmt.Sprintf("%d%%", r.Overall), inner/3),
		statBox(d.env.T(i18n.TotalDone), fmt.Sprintf("%d", r.Snapshot.TotalAttempted), inner/3),
		statBox(d.env.T(i18n.TodayDone), fmt.Sprintf("%d", r.Today), inner/3),
	)

	lines := []string{summary, "", theme.Body.Bold(true).Render(d.env.T(i18n.AccuracyByTopic))}
	for _, name := range r.Snapshot.Categories() {
		cs := r.Snapshot.CategoryAccuracy[name]
		bar := components.NewProgressBar(padRight(name, 12), cs.Accuracy(), true, inner)
		if cs.Weak() {
			bar.Fill = theme.Error
		}
		lines = append(lines, bar.View())
	}

	lines = append(lines, "")
	if len(r.WeakAreas) == 0 {
		lines = append(lines, theme.Correct.Render("★ "+d.env.T(i18n.GreatJob)))
	} else {
		lines = append(lines, theme.Incorrect.Render(d.env.T(i18n.NeedMorePractice)+": "+strings.Join(r.WeakAreas, ", ")))
	}
	return strings.Join(lines, "\n")
}

func statBox(label, value string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(theme.Hint.Render(label) + "\n" + lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(value))
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
