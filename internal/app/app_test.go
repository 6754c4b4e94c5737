package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/router"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/screens/home"
)

type escStub struct {
	handles bool
	escapes int
}

func (s *escStub) Init() tea.Cmd { return nil }
func (s *escStub) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "esc" {
		s.escapes++
	}
	return s, nil
}
func (s *escStub) View(int, int) string { return "stub" }
func (s *escStub) Title() string        { return "Stub" }
func (s *escStub) HandlesEscape() bool  { return s.handles }

func TestSkipSplashStartsHome(t *testing.T) {
	m := newAppModel(Options{Env: &screen.Env{Lang: i18n.EN}, SkipSplash: true})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("expected home screen, got %T", m.router.Active())
	}
}

func TestEscapePopsByDefault(t *testing.T) {
	m := newAppModel(Options{Env: &screen.Env{Lang: i18n.EN}, SkipSplash: true})
	stub := &escStub{}
	m.router.Push(stub)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if stub.escapes != 0 {
		t.Error("screen should not see Esc")
	}
}

func TestEscapeDeliveredToHandler(t *testing.T) {
	m := newAppModel(Options{Env: &screen.Env{Lang: i18n.EN}, SkipSplash: true})
	stub := &escStub{handles: true}
	m.router.Push(stub)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if stub.escapes != 1 {
		t.Errorf("expected Esc delivered to the screen, got %d", stub.escapes)
	}
	if m.router.Depth() != 2 {
		t.Errorf("expected stack untouched, got depth %d", m.router.Depth())
	}
}
