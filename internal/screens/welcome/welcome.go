// Package welcome is the start-up splash.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/router"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

const owlArt = `   ,___,
   (O,O)
   /)_)
  --""--
 | A B C |
  -------`

// letters float around the owl once the first phase is over
var letterFrames = []string{"a", "b", "c", "d", "e"}

type tickMsg time.Time

// WelcomeScreen plays a short splash and then replaces itself with home.
type WelcomeScreen struct {
	env          *screen.Env
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands over to the screen made by homeFactory.
func New(env *screen.Env, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		env:         env,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		w.tickCount++
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
			return w, tick()
		}
		return w, w.transition()

	case tea.KeyPressMsg:
		// Keys are ignored until the banner is on screen.
		if w.elapsed >= phase2End {
			return w, w.transition()
		}
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	owl := lipgloss.NewStyle().Foreground(theme.Primary).Render(owlArt)

	if w.elapsed >= phase1End {
		letter := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(letterFrames[w.tickCount%len(letterFrames)])
		lines := strings.Split(owl, "\n")
		lines[0] = letter + "  " + lines[0]
		if len(lines) > 2 {
			lines[2] = lines[2] + "    " + letter
		}
		owl = strings.Join(lines, "\n")
	}

	sections := []string{owl}
	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.env.T(i18n.Tagline)),
			"",
			theme.Hint.Render(w.env.T(i18n.PressAnyKey)),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
