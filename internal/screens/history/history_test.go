package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/store"
)

func newTestHistory(t *testing.T) (*HistoryScreen, store.HistoryRepo) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	env := &screen.Env{History: st.HistoryRepo(), Lang: i18n.EN}
	return New(env), st.HistoryRepo()
}

func TestListsRunsNewestFirst(t *testing.T) {
	s, repo := newTestHistory(t)
	ctx := context.Background()
	ts := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)

	if err := repo.Append(ctx, "a", []quiz.Record{{Timestamp: ts, QuestionID: "q1", IsCorrect: true, Category: "Grammar"}}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Append(ctx, "b", []quiz.Record{{Timestamp: ts.Add(time.Hour), QuestionID: "q2", Category: "Vocabulary"}}); err != nil {
		t.Fatal(err)
	}

	s.Update(s.Init()())
	if len(s.sessions) != 2 || s.sessions[0].SessionID != "b" {
		t.Fatalf("expected run b first, got %+v", s.sessions)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Vocabulary") || !strings.Contains(view, "Mar 10 09:30") {
		t.Error("expected both runs rendered")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("expected selection to move, got %d", s.selected)
	}
}

func TestEmptyHistory(t *testing.T) {
	s, _ := newTestHistory(t)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 40), "No practice records yet.") {
		t.Error("expected empty message")
	}
}
