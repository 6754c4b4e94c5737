// Package home is the topic picker and entry point to the parent screens.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/router"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/screens/bank"
	"github.com/abhisek/wordwise/internal/screens/dashboard"
	"github.com/abhisek/wordwise/internal/screens/pin"
	quizscreen "github.com/abhisek/wordwise/internal/screens/quiz"
	"github.com/abhisek/wordwise/internal/stats"
	"github.com/abhisek/wordwise/internal/ui/components"
	"github.com/abhisek/wordwise/internal/ui/layout"
)

type loadedMsg struct {
	categories []question.CategoryCount
	today      int
	err        error
}

type startedMsg struct {
	session  *quiz.Session
	category string
	err      error
}

type langSavedMsg struct {
	err error
}

// HomeScreen lists the topics and the parent entries.
type HomeScreen struct {
	env        *screen.Env
	categories []question.CategoryCount
	today      int
	loaded     bool
	menu       components.Menu
	status     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. Topics load in Init and again whenever the
// screen becomes the root of the stack.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.buildMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) Title() string {
	return h.env.T(i18n.PickTopic)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: h.env.T(i18n.StartPractice)},
		{Key: "L", Description: h.env.T(i18n.LangSwitch)},
		{Key: "Ctrl+C", Description: h.env.T(i18n.Quit)},
	}
}

func (h *HomeScreen) load() tea.Cmd {
	bankRepo, history := h.env.Bank, h.env.History
	now := h.env.Clock()
	return func() tea.Msg {
		ctx := context.Background()
		cats, err := bankRepo.Categories(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		msg := loadedMsg{categories: cats}
		if history != nil {
			records, err := history.All(ctx)
			if err != nil {
				return loadedMsg{categories: cats, err: err}
			}
			msg.today = stats.TodayCount(records, now)
		}
		return msg
	}
}

// buildMenu lays out one entry per topic, then the parent entries. The
// cursor stays on the same row across rebuilds.
func (h *HomeScreen) buildMenu() {
	selected := h.menu.Selected

	var items []components.MenuItem
	for _, c := range h.categories {
		name := c.Name
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s (%d)", c.Name, c.Count),
			Action: func() tea.Cmd { return h.start(name) },
		})
	}
	items = append(items,
		components.MenuItem{
			Label:  h.env.T(i18n.ParentDashboard),
			Action: func() tea.Cmd { return h.openParent(func() screen.Screen { return dashboard.New(h.env) }) },
		},
		components.MenuItem{
			Label:  h.env.T(i18n.ManageBank),
			Action: func() tea.Cmd { return h.openParent(func() screen.Screen { return bank.New(h.env) }) },
		},
		components.MenuItem{
			Label:  h.env.T(i18n.Quit),
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	h.menu = components.NewMenu(items)
	if selected < len(items) {
		h.menu.Selected = selected
	}
}

// start samples a run from category. An empty category reports the
// no-questions message instead of opening a session.
func (h *HomeScreen) start(category string) tea.Cmd {
	bankRepo, sampler, clock := h.env.Bank, h.env.Sampler, h.env.Now
	return func() tea.Msg {
		qs, err := bankRepo.List(context.Background())
		if err != nil {
			return startedMsg{category: category, err: err}
		}
		sess, err := quiz.StartBasicRun(qs, category, sampler, quiz.WithClock(clock))
		return startedMsg{session: sess, category: category, err: err}
	}
}

// openParent pushes the target directly, or behind the PIN screen when a
// parent PIN is set.
func (h *HomeScreen) openParent(target func() screen.Screen) tea.Cmd {
	guard, env := h.env.Guard, h.env
	return func() tea.Msg {
		if guard != nil {
			enabled, err := guard.Enabled(context.Background())
			if err != nil {
				env.Log().Error("read parent PIN failed", zap.Error(err))
			}
			if enabled || err != nil {
				return router.PushScreenMsg{Screen: pin.New(env, target)}
			}
		}
		return router.PushScreenMsg{Screen: target()}
	}
}

func (h *HomeScreen) toggleLang() tea.Cmd {
	h.env.Lang = h.env.Lang.Toggle()
	h.buildMenu()
	settings, lang := h.env.Settings, h.env.Lang
	return func() tea.Msg {
		if settings == nil {
			return langSavedMsg{}
		}
		return langSavedMsg{err: i18n.Save(context.Background(), settings, lang)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		h.loaded = true
		h.categories = msg.categories
		h.today = msg.today
		if msg.err != nil {
			h.status = h.env.Err(msg.err)
		}
		h.buildMenu()
		return h, nil

	case router.RootResumedMsg:
		h.status = ""
		return h, h.load()

	case startedMsg:
		if msg.err != nil {
			h.status = h.env.Err(msg.err)
			return h, nil
		}
		h.status = ""
		next := quizscreen.New(h.env, msg.session, msg.category)
		return h, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case langSavedMsg:
		if msg.err != nil {
			h.status = h.env.Err(msg.err)
		}
		return h, nil

	case tea.KeyPressMsg:
		if msg.String() == "L" {
			return h, h.toggleLang()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 24 || width < 80
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections, renderStatsBar(h.env, h.totalQuestions(), len(h.categories), h.today, cw))

	if h.loaded && len(h.categories) == 0 {
		sections = append(sections, renderNotice(h.env.T(i18n.NoTopics), cw))
	}
	sections = append(sections, renderMenu(h.menu, len(h.categories), cw, compact))
	if h.status != "" {
		sections = append(sections, renderNotice(h.status, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) totalQuestions() int {
	n := 0
	for _, c := range h.categories {
		n += c.Count
	}
	return n
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.loaded && len(h.categories) == 0:
		return MascotSleepy
	case h.today >= quiz.MaxRunLength:
		return MascotCheering
	default:
		return MascotIdle
	}
}
