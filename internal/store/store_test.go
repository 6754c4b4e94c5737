package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mcq(id, category string) question.Question {
	return question.Question{
		ID:       id,
		Kind:     question.KindMCQ,
		Text:     "She ____ home.",
		Options:  []string{"go", "goes"},
		Answer:   "goes",
		Category: category,
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"questions", "attempts", "settings", "llm_request_events", "global_sequence"} {
		var got string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", name,
		).Scan(&got)
		if err != nil {
			t.Errorf("table %s: %v", name, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.BankRepo().Add(ctx, mcq("a", "Grammar")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.BankRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx, s.DB())
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestBank_AddListGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.BankRepo()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, mcq("b", "Grammar")))
	spelling := question.Question{
		ID: "a", Kind: question.KindSpelling, Text: "(s___n)", Answer: "spoon",
		Category: "Vocabulary", OriginalText: "spoon 湯匙", Explanation: "A spoon.", IsAI: true,
	}
	require.NoError(t, repo.Add(ctx, spelling))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID, "insertion order is kept")
	assert.Equal(t, []string{"go", "goes"}, list[0].Options)
	assert.Equal(t, spelling, list[1])

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, spelling, got)

	_, err = repo.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBank_AddRejects(t *testing.T) {
	s := openTestStore(t)
	repo := s.BankRepo()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, mcq("a", "Grammar")))

	err := repo.Add(ctx, mcq("a", "Grammar"))
	assert.ErrorIs(t, err, ErrDuplicateID)

	bad := mcq("c", "Grammar")
	bad.Answer = "went"
	err = repo.Add(ctx, bad)
	assert.True(t, question.IsValidationError(err))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBank_AddManyIsAtomic(t *testing.T) {
	s := openTestStore(t)
	repo := s.BankRepo()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, mcq("a", "Grammar")))
	err := repo.AddMany(ctx, []question.Question{mcq("x", "Grammar"), mcq("a", "Grammar")})
	assert.ErrorIs(t, err, ErrDuplicateID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "failed batch must not leave partial rows")

	require.NoError(t, repo.AddMany(ctx, []question.Question{mcq("x", "Grammar"), mcq("y", "Articles")}))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "x", "y"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestBank_UpdateDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.BankRepo()
	ctx := context.Background()

	require.NoError(t, repo.AddMany(ctx, []question.Question{mcq("a", "Grammar"), mcq("b", "Grammar")}))

	upd := mcq("a", "Tenses")
	upd.Text = "They ____ home."
	upd.Options = []string{"go", "goes"}
	upd.Answer = "go"
	require.NoError(t, repo.Update(ctx, upd))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, upd, list[0], "update keeps position")

	assert.ErrorIs(t, repo.Update(ctx, mcq("zzz", "Grammar")), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "a"))
	assert.ErrorIs(t, repo.Delete(ctx, "a"), ErrNotFound)

	require.NoError(t, repo.Clear(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBank_Replace(t *testing.T) {
	s := openTestStore(t)
	repo := s.BankRepo()
	ctx := context.Background()

	require.NoError(t, repo.AddMany(ctx, []question.Question{mcq("a", "Grammar"), mcq("b", "Grammar")}))
	require.NoError(t, repo.Replace(ctx, []question.Question{mcq("c", "Vocabulary")}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c", list[0].ID)

	bad := mcq("d", "X")
	bad.Text = ""
	err = repo.Replace(ctx, []question.Question{mcq("e", "X"), bad})
	require.Error(t, err)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "invalid replacement leaves bank untouched")

	err = repo.Replace(ctx, []question.Question{mcq("e", "X"), mcq("e", "X")})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestBank_Categories(t *testing.T) {
	s := openTestStore(t)
	repo := s.BankRepo()
	ctx := context.Background()

	require.NoError(t, repo.AddMany(ctx, []question.Question{
		mcq("a", "Grammar"), mcq("b", "Vocabulary"), mcq("c", "Grammar"),
	}))
	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []question.CategoryCount{{Name: "Grammar", Count: 2}, {Name: "Vocabulary", Count: 1}}, cats)
}

func TestBank_SeedIfEmpty(t *testing.T) {
	s := openTestStore(t)
	repo := s.BankRepo()
	ctx := context.Background()

	seeded, err := repo.SeedIfEmpty(ctx, question.Seed())
	require.NoError(t, err)
	assert.True(t, seeded)

	n, _ := repo.Count(ctx)
	assert.Equal(t, 5, n)

	// A cleared bank stays empty on the next start.
	require.NoError(t, repo.Clear(ctx))
	seeded, err = repo.SeedIfEmpty(ctx, question.Seed())
	require.NoError(t, err)
	assert.False(t, seeded)
	n, _ = repo.Count(ctx)
	assert.Zero(t, n)
}

func TestHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	base := time.UnixMilli(1_700_000_000_000)
	first := []quiz.Record{
		{Timestamp: base, QuestionID: "a", IsCorrect: true, UserAnswer: " goes", Category: "Grammar"},
		{Timestamp: base.Add(time.Second), QuestionID: "b", IsCorrect: false, UserAnswer: "spon", Category: "Vocabulary"},
	}
	second := []quiz.Record{
		{Timestamp: base.Add(time.Minute), QuestionID: "c", IsCorrect: true, UserAnswer: "are", Category: "Grammar"},
	}
	require.NoError(t, repo.Append(ctx, "s1", first))
	require.NoError(t, repo.Append(ctx, "s2", second))
	require.NoError(t, repo.Append(ctx, "s3", nil))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, want := range append(first, second...) {
		assert.True(t, want.Timestamp.Equal(all[i].Timestamp))
		all[i].Timestamp = want.Timestamp
		assert.Equal(t, want, all[i])
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	seen, err := sessionExists(ctx, s.DB(), "s1")
	require.NoError(t, err)
	assert.True(t, seen)
	seen, err = sessionExists(ctx, s.DB(), "s3")
	require.NoError(t, err)
	assert.False(t, seen, "empty append writes nothing")

	sessions, err := repo.Sessions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].SessionID)
	assert.Equal(t, 1, sessions[0].Total)
	assert.Equal(t, 1, sessions[0].Correct)
	assert.Equal(t, "s1", sessions[1].SessionID)
	assert.Equal(t, 2, sessions[1].Total)
	assert.Equal(t, 1, sessions[1].Correct)
	assert.True(t, base.Equal(sessions[1].StartedAt))

	latest, err := repo.Sessions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "s2", latest[0].SessionID)

	require.NoError(t, repo.Reset(ctx))
	all, err = repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistoryAppendOncePerSession(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), WithLogger(zap.New(core)))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	repo := s.HistoryRepo()
	ctx := context.Background()
	batch := []quiz.Record{
		{Timestamp: time.UnixMilli(1_700_000_000_000), QuestionID: "a", IsCorrect: true, UserAnswer: "goes", Category: "Grammar"},
		{Timestamp: time.UnixMilli(1_700_000_001_000), QuestionID: "b", UserAnswer: "spon", Category: "Vocabulary"},
	}

	const uploads = 20
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok, dup    int
		unexpected []error
	)
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Append(ctx, "retried", batch)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrDuplicateSession):
				dup++
			default:
				unexpected = append(unexpected, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, unexpected)
	assert.Equal(t, 1, ok)
	assert.Equal(t, uploads-1, dup)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(batch), n, "only one copy of the batch is stored")

	persisted := logs.FilterMessage("history persisted")
	require.Equal(t, 1, persisted.Len())
	assert.Equal(t, "retried", persisted.All()[0].ContextMap()["session_id"])
}

func TestHistoryIndependentOfBank(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.BankRepo().Add(ctx, mcq("a", "Grammar")))
	require.NoError(t, s.HistoryRepo().Append(ctx, "s1", []quiz.Record{{Timestamp: time.Now(), QuestionID: "a", Category: "Grammar"}}))
	require.NoError(t, s.BankRepo().Clear(ctx))

	n, err := s.HistoryRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSettings(t *testing.T) {
	s := openTestStore(t)
	repo := s.SettingsRepo()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, SettingLang)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, SettingLang, "en"))
	require.NoError(t, repo.Set(ctx, SettingLang, "zh"))
	v, ok, err := repo.Get(ctx, SettingLang)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "zh", v)

	require.NoError(t, repo.Delete(ctx, SettingLang))
	_, ok, _ = repo.Get(ctx, SettingLang)
	assert.False(t, ok)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "worksheet-ocr", InputTokens: 300, OutputTokens: 70, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "question-gen", InputTokens: 10, OutputTokens: 0, LatencyMs: 100, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "boom", got[0].ErrorMessage, "newest first")
	assert.Greater(t, got[0].Sequence, got[1].Sequence)

	gen, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen"})
	require.NoError(t, err)
	assert.Len(t, gen, 2)

	e, err := repo.GetLLMEvent(ctx, got[1].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "worksheet-ocr", e.Purpose)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	assert.Equal(t, []PurposeUsage{
		{Purpose: "question-gen", Calls: 2, InputTokens: 110, OutputTokens: 50, AvgLatencyMs: 150},
		{Purpose: "worksheet-ocr", Calls: 1, InputTokens: 300, OutputTokens: 70, AvgLatencyMs: 400},
	}, byPurpose)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ModelUsage{
		{Model: "gemini-3-flash-preview", Calls: 2, InputTokens: 400, OutputTokens: 120},
	}, byModel)
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "question-gen", Success: true}))
	require.NoError(t, s.HistoryRepo().Append(ctx, "s", []quiz.Record{{Timestamp: time.Now(), QuestionID: "a"}}))

	var attemptSeq int64
	require.NoError(t, s.DB().QueryRow("SELECT sequence FROM attempts").Scan(&attemptSeq))
	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Greater(t, attemptSeq, events[0].Sequence)
}
