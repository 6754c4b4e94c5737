package library

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordwise/internal/aigen"
	"github.com/abhisek/wordwise/internal/llm"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/sheets"
	"github.com/abhisek/wordwise/internal/store"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

type fixture struct {
	svc   *Service
	store *store.Store
	mock  *llm.MockProvider
}

func newFixture(t *testing.T, sheetBody string, withAI bool) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sheetBody))
	}))
	t.Cleanup(srv.Close)

	f := &fixture{store: st}
	opts := Options{
		Bank:         st.BankRepo(),
		Settings:     st.SettingsRepo(),
		Sheets:       &sheets.Client{HTTP: srv.Client(), BaseURL: srv.URL},
		SheetsAPIKey: "cfg-key",
		Now:          func() time.Time { return fixedNow },
	}
	if withAI {
		f.mock = llm.NewMockProvider()
		opts.Generator = aigen.New(f.mock, aigen.DefaultConfig(), aigen.WithClock(func() time.Time { return fixedNow }))
	}
	f.svc = New(opts)
	return f
}

func TestSheetSettingsPrecedence(t *testing.T) {
	f := newFixture(t, `{}`, false)
	ctx := context.Background()

	st, err := f.svc.SheetSettings(ctx, sheets.Settings{})
	require.NoError(t, err)
	assert.Equal(t, sheets.Settings{APIKey: "cfg-key", Range: sheets.DefaultRange}, st)

	require.NoError(t, f.store.SettingsRepo().Set(ctx, store.SettingSheetID, "saved-id"))
	st, err = f.svc.SheetSettings(ctx, sheets.Settings{Range: "Quiz!A2:F"})
	require.NoError(t, err)
	assert.Equal(t, "saved-id", st.SheetID)
	assert.Equal(t, "Quiz!A2:F", st.Range)
}

func TestSyncReplacesBankAndSavesSettings(t *testing.T) {
	body := `{"values":[
		["Grammar","MCQ","She ____ happy.","is, are","is","Singular."],
		["Grammar","MCQ","","a, b","a"],
		["Vocabulary","spelling_correction","Spell: c_t","","cat"]
	]}`
	f := newFixture(t, body, false)
	ctx := context.Background()
	require.NoError(t, f.store.BankRepo().Add(ctx, question.Seed()[0]))

	st := sheets.Settings{APIKey: "k", SheetID: "sheet-1", Range: "Sheet1!A2:F"}
	res, err := f.svc.Sync(ctx, st)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 2)
	assert.Len(t, res.Skipped, 1)

	qs, err := f.store.BankRepo().List(ctx)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.True(t, strings.HasPrefix(qs[0].ID, "cloud_"))

	id, ok, err := f.store.SettingsRepo().Get(ctx, store.SettingSheetID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sheet-1", id)
}

func TestSyncFailureKeepsBank(t *testing.T) {
	f := newFixture(t, `{"values":[]}`, false)
	ctx := context.Background()
	require.NoError(t, f.store.BankRepo().Add(ctx, question.Seed()[0]))

	_, err := f.svc.Sync(ctx, sheets.Settings{APIKey: "k", SheetID: "s"})
	assert.ErrorIs(t, err, sheets.ErrNoData)

	n, err := f.store.BankRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAIDisabled(t *testing.T) {
	f := newFixture(t, `{}`, false)
	ctx := context.Background()
	assert.False(t, f.svc.AIEnabled())

	_, err := f.svc.Generate(ctx, "Grammar")
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	_, err = f.svc.Scan(ctx, aigen.Image{})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	_, err = f.svc.Assist(ctx, question.Question{Text: "x"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestGenerateAppends(t *testing.T) {
	f := newFixture(t, `{}`, true)
	ctx := context.Background()
	_, err := f.store.BankRepo().SeedIfEmpty(ctx, question.Seed())
	require.NoError(t, err)

	f.mock.AddResponse(llm.MockResponse{Content: []byte(`{"questions":[
		{"question":"They ___ here.","type":"MCQ","options":["is","are"],"answer":"are","explanation":"Plural.","category":"Grammar"}
	]}`)})

	batch, err := f.svc.Generate(ctx, "Grammar")
	require.NoError(t, err)
	require.Len(t, batch.Questions, 1)

	n, err := f.store.BankRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(question.Seed())+1, n)
}

func TestImportFile(t *testing.T) {
	f := newFixture(t, `{}`, false)
	ctx := context.Background()
	_, err := f.store.BankRepo().SeedIfEmpty(ctx, question.Seed())
	require.NoError(t, err)

	doc := `format_version: v1.0.0
questions:
  - id: file_1
    type: TF
    question: Cats can fly.
    answer: "False"
    category: Science
`
	n, err := f.svc.ImportFile(ctx, strings.NewReader(doc), false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	count, _ := f.store.BankRepo().Count(ctx)
	assert.Equal(t, len(question.Seed())+1, count)

	n, err = f.svc.ImportFile(ctx, strings.NewReader(doc), true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	count, _ = f.store.BankRepo().Count(ctx)
	assert.Equal(t, 1, count)
}
