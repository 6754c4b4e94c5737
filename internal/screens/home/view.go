package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/screens/welcome"
	"github.com/abhisek/wordwise/internal/ui/components"
	"github.com/abhisek/wordwise/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

func renderTitle(cw int, compact bool) string {
	if compact {
		return components.Centered(welcome.RenderBanner(0), cw)
	}
	return components.Centered(welcome.RenderBanner(cw), cw)
}

// renderStatsBar shows bank size, topic count and today's answers.
func renderStatsBar(env *screen.Env, questions, topics, today, cw int) string {
	qStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	tStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	bar := fmt.Sprintf("%s  %s  %s",
		qStyle.Render(fmt.Sprintf("✎ %d", questions)),
		tStyle.Render(fmt.Sprintf("◆ %d", topics)),
		dStyle.Render(fmt.Sprintf("☀ %s %d", env.T(i18n.TodayDone), today)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(bar)
}

// renderMenu draws topics as buttons and the parent entries below a rule.
// Compact mode drops the button borders.
func renderMenu(m components.Menu, topics int, cw int, compact bool) string {
	var rows []string
	for i, item := range m.Items {
		if i == topics && topics > 0 {
			rows = append(rows, lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", buttonWidth)))
		}
		selected := i == m.Selected
		if !compact {
			rows = append(rows, components.Button(item.Label, selected, buttonWidth))
			continue
		}
		if selected {
			rows = append(rows, theme.Selected.Render(" ▸ "+item.Label+" "))
		} else {
			rows = append(rows, theme.Unselected.Render("   "+item.Label))
		}
	}
	return components.Centered(strings.Join(rows, "\n"), cw)
}

func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return components.Centered(RenderMascot(variant), cw)
}

// renderFrame wraps content in the double-border frame, centered both ways.
func renderFrame(content string, width, height int) string {
	return components.Frame(content, width, height)
}
