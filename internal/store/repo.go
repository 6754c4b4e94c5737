package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/quiz"
)

var (
	// ErrNotFound is returned when a row addressed by ID does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicateID is returned when adding a question whose ID is taken.
	ErrDuplicateID = errors.New("store: duplicate question id")

	// ErrDuplicateSession is returned when appending records for a session
	// that is already in the history.
	ErrDuplicateSession = errors.New("store: session already recorded")
)

// Setting keys.
const (
	SettingLang       = "lang"
	SettingSheetID    = "sheets.sheet_id"
	SettingSheetRange = "sheets.range"
	SettingParentPIN  = "parent.pin_hash"
	SettingBankSeeded = "bank.seeded"
)

// BankRepo stores the question bank in insertion order.
type BankRepo interface {
	// List returns every question in bank order.
	List(ctx context.Context) ([]question.Question, error)

	// Get returns one question or ErrNotFound.
	Get(ctx context.Context, id string) (question.Question, error)

	// Add validates and appends q.
	Add(ctx context.Context, q question.Question) error

	// AddMany validates all of qs, then appends them in one transaction.
	AddMany(ctx context.Context, qs []question.Question) error

	// Update replaces the question with the same ID, keeping its position.
	Update(ctx context.Context, q question.Question) error

	// Delete removes one question.
	Delete(ctx context.Context, id string) error

	// Clear removes every question.
	Clear(ctx context.Context) error

	// Replace validates all of qs, then swaps the whole bank for them.
	Replace(ctx context.Context, qs []question.Question) error

	// Categories lists categories with question counts.
	Categories(ctx context.Context) ([]question.CategoryCount, error)

	// SeedIfEmpty installs qs the first time a bank is created. It reports
	// whether anything was installed.
	SeedIfEmpty(ctx context.Context, qs []question.Question) (bool, error)

	// Count returns the number of questions.
	Count(ctx context.Context) (int, error)
}

// HistoryRepo stores attempt records independently of the bank.
type HistoryRepo interface {
	// Append writes the records of one finished session. A session that
	// already has records fails with ErrDuplicateSession and writes nothing.
	Append(ctx context.Context, sessionID string, records []quiz.Record) error

	// All returns every record in the order it was written.
	All(ctx context.Context) ([]quiz.Record, error)

	// Reset deletes the whole history.
	Reset(ctx context.Context) error

	// Count returns the number of records.
	Count(ctx context.Context) (int, error)

	// Sessions summarizes the most recent sessions, newest first. A limit
	// of 0 returns all of them.
	Sessions(ctx context.Context, limit int) ([]SessionSummary, error)
}

// SessionSummary is one finished run as recorded in the history.
type SessionSummary struct {
	SessionID string    `json:"session_id"`
	Category  string    `json:"category"`
	StartedAt time.Time `json:"started_at"`
	Total     int       `json:"total"`
	Correct   int       `json:"correct"`
}

// SettingsRepo is a small key/value store.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM requests.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
