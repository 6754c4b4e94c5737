package bank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/library"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/sheets"
	"github.com/abhisek/wordwise/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// drain runs cmd and every command it produces, skipping spinner ticks.
func drain(b *BankScreen, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		default:
			_, next := b.Update(msg)
			queue = append(queue, next)
		}
	}
}

func newTestBank(t *testing.T, sheetBody string) (*BankScreen, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	if _, err := st.BankRepo().SeedIfEmpty(ctx, question.Seed()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := st.SettingsRepo().Set(ctx, store.SettingSheetID, "sheet-1"); err != nil {
		t.Fatalf("save sheet id: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sheetBody))
	}))
	t.Cleanup(srv.Close)

	lib := library.New(library.Options{
		Bank:         st.BankRepo(),
		Settings:     st.SettingsRepo(),
		Sheets:       &sheets.Client{HTTP: srv.Client(), BaseURL: srv.URL},
		SheetsAPIKey: "key",
	})
	env := &screen.Env{Bank: st.BankRepo(), Settings: st.SettingsRepo(), Library: lib, Lang: i18n.EN}
	b := New(env)
	drain(b, b.Init())
	return b, st
}

func count(t *testing.T, st *store.Store) int {
	t.Helper()
	n, err := st.BankRepo().Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestPagesThroughBank(t *testing.T) {
	b, _ := newTestBank(t, `{}`)
	if len(b.questions) != 5 || b.pager.TotalPages != 1 {
		t.Fatalf("expected 5 questions on 1 page, got %d on %d", len(b.questions), b.pager.TotalPages)
	}
	b.Update(specialKey(tea.KeyDown))
	b.Update(specialKey(tea.KeyDown))
	if b.cursor != 2 {
		t.Errorf("expected cursor 2, got %d", b.cursor)
	}
	if !strings.Contains(b.View(100, 40), "Page 1 of 1") {
		t.Error("expected page indicator")
	}
}

func TestDeleteNeedsConfirm(t *testing.T) {
	b, st := newTestBank(t, `{}`)

	b.Update(keyPress('d'))
	if !b.HandlesEscape() {
		t.Fatal("expected a pending confirm")
	}
	b.Update(keyPress('n'))
	if count(t, st) != 5 {
		t.Fatal("n should not delete")
	}

	b.Update(keyPress('d'))
	_, cmd := b.Update(keyPress('y'))
	drain(b, cmd)
	if count(t, st) != 4 {
		t.Errorf("expected 4 questions, got %d", count(t, st))
	}
	if len(b.questions) != 4 || b.status != "Deleted." {
		t.Errorf("expected reload with status, got %d questions and %q", len(b.questions), b.status)
	}
}

func TestClearAll(t *testing.T) {
	b, st := newTestBank(t, `{}`)
	b.Update(keyPress('D'))
	_, cmd := b.Update(keyPress('y'))
	drain(b, cmd)

	if count(t, st) != 0 {
		t.Errorf("expected empty bank, got %d", count(t, st))
	}
	if !strings.Contains(b.View(100, 40), "The question bank is empty.") {
		t.Error("expected empty bank message")
	}
}

func TestSyncReplacesBank(t *testing.T) {
	b, st := newTestBank(t, `{"values":[["Grammar","MCQ","I ___ a cat.","have, has","have"]]}`)
	b.Update(keyPress('s'))
	_, cmd := b.Update(keyPress('y'))
	drain(b, cmd)

	if b.err != nil {
		t.Fatalf("sync: %v", b.err)
	}
	if count(t, st) != 1 {
		t.Errorf("expected 1 question after sync, got %d", count(t, st))
	}
	if b.status != "Sync complete (1 questions)" {
		t.Errorf("unexpected status %q", b.status)
	}
}

func TestSyncErrorKeepsBank(t *testing.T) {
	b, st := newTestBank(t, `{"error":{"code":403,"status":"PERMISSION_DENIED","message":"denied"}}`)
	b.Update(keyPress('s'))
	_, cmd := b.Update(keyPress('y'))
	drain(b, cmd)

	if count(t, st) != 5 {
		t.Errorf("bank should be untouched, got %d", count(t, st))
	}
	if !strings.Contains(b.View(100, 40), "Permission Denied") {
		t.Error("expected localized permission message")
	}
}
