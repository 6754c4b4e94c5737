// Package library applies bulk changes to the question bank: spreadsheet
// sync, AI-generated questions, worksheet scans and file imports. The CLI,
// the TUI and the parent API share it so every insertion path validates and
// logs the same way.
package library

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/aigen"
	"github.com/abhisek/wordwise/internal/bankio"
	"github.com/abhisek/wordwise/internal/llm"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/sheets"
	"github.com/abhisek/wordwise/internal/store"
)

// Options configures a Service. Generator may be nil when no LLM provider
// is configured; AI operations then fail with llm.ErrNotConfigured.
type Options struct {
	Bank      store.BankRepo
	Settings  store.SettingsRepo
	Sheets    *sheets.Client
	Generator aigen.Generator

	// Sheet defaults from configuration. The API key is never stored.
	SheetsAPIKey string
	SheetsID     string
	SheetsRange  string

	Logger *zap.Logger
	Now    func() time.Time
}

// Service is the bank's bulk-change API.
type Service struct {
	bank     store.BankRepo
	settings store.SettingsRepo
	sheets   *sheets.Client
	gen      aigen.Generator
	defaults sheets.Settings
	log      *zap.Logger
	now      func() time.Time
}

// New creates a Service.
func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sheets == nil {
		opts.Sheets = sheets.NewClient()
	}
	return &Service{
		bank:     opts.Bank,
		settings: opts.Settings,
		sheets:   opts.Sheets,
		gen:      opts.Generator,
		defaults: sheets.Settings{
			APIKey:  opts.SheetsAPIKey,
			SheetID: opts.SheetsID,
			Range:   opts.SheetsRange,
		},
		log: opts.Logger,
		now: opts.Now,
	}
}

// AIEnabled reports whether generation, analysis and scanning are available.
func (s *Service) AIEnabled() bool {
	return s.gen != nil
}

// SheetSettings returns the effective sheet settings. Saved values win over
// configured defaults, and override fields win over both.
func (s *Service) SheetSettings(ctx context.Context, override sheets.Settings) (sheets.Settings, error) {
	st := s.defaults
	for key, dst := range map[string]*string{
		store.SettingSheetID:    &st.SheetID,
		store.SettingSheetRange: &st.Range,
	} {
		v, ok, err := s.settings.Get(ctx, key)
		if err != nil {
			return sheets.Settings{}, fmt.Errorf("read %s: %w", key, err)
		}
		if ok && v != "" {
			*dst = v
		}
	}
	if override.APIKey != "" {
		st.APIKey = override.APIKey
	}
	if override.SheetID != "" {
		st.SheetID = override.SheetID
	}
	if override.Range != "" {
		st.Range = override.Range
	}
	if st.Range == "" {
		st.Range = sheets.DefaultRange
	}
	return st, nil
}

// Sync imports the sheet and replaces the whole bank with its valid rows.
// The bank is left untouched on any failure. On success the sheet ID and
// range are saved for next time.
func (s *Service) Sync(ctx context.Context, st sheets.Settings) (*sheets.Result, error) {
	res, err := s.sheets.Import(ctx, st, s.now())
	if err != nil {
		s.log.Warn("sheet sync failed", zap.String("sheet_id", st.SheetID), zap.Error(err))
		return res, err
	}
	if err := s.bank.Replace(ctx, res.Questions); err != nil {
		return res, fmt.Errorf("replace bank: %w", err)
	}
	if err := s.settings.Set(ctx, store.SettingSheetID, st.SheetID); err != nil {
		return res, fmt.Errorf("save sheet id: %w", err)
	}
	if err := s.settings.Set(ctx, store.SettingSheetRange, st.Range); err != nil {
		return res, fmt.Errorf("save sheet range: %w", err)
	}
	s.log.Info("sheet sync complete",
		zap.String("sheet_id", st.SheetID),
		zap.Int("imported", len(res.Questions)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

// Generate asks the model for questions similar to those in category and
// appends the valid ones.
func (s *Service) Generate(ctx context.Context, category string) (*aigen.Batch, error) {
	if s.gen == nil {
		return nil, llm.ErrNotConfigured
	}
	qs, err := s.bank.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bank: %w", err)
	}
	batch, err := s.gen.Similar(ctx, question.FilterByCategory(qs, category), category)
	if err != nil {
		return batch, err
	}
	if err := s.Append(ctx, "ai", batch.Questions); err != nil {
		return batch, err
	}
	return batch, nil
}

// Scan extracts questions from a worksheet photo. Nothing is saved; the
// caller previews the batch and calls Append.
func (s *Service) Scan(ctx context.Context, img aigen.Image) (*aigen.Batch, error) {
	if s.gen == nil {
		return nil, llm.ErrNotConfigured
	}
	return s.gen.Extract(ctx, img)
}

// Assist fills empty fields of q from the model's reading of its text.
func (s *Service) Assist(ctx context.Context, q question.Question) (question.Question, error) {
	if s.gen == nil {
		return q, llm.ErrNotConfigured
	}
	if strings.TrimSpace(q.Text) == "" {
		return q, fmt.Errorf("assist: question text is empty")
	}
	a, err := s.gen.Analyze(ctx, q.Text)
	if err != nil {
		return q, err
	}
	return a.Apply(q), nil
}

// Append validates and adds qs in one transaction.
func (s *Service) Append(ctx context.Context, source string, qs []question.Question) error {
	if len(qs) == 0 {
		return nil
	}
	if err := s.bank.AddMany(ctx, qs); err != nil {
		return fmt.Errorf("append %s questions: %w", source, err)
	}
	s.log.Info("bank mutated", zap.String("kind", "append"), zap.String("source", source), zap.Int("count", len(qs)))
	return nil
}

// ImportFile reads a YAML export. With replace the bank is swapped for the
// file's questions; otherwise they are appended.
func (s *Service) ImportFile(ctx context.Context, r io.Reader, replace bool) (int, error) {
	doc, err := bankio.ReadYAML(r, s.now())
	if err != nil {
		return 0, err
	}
	if replace {
		if err := s.bank.Replace(ctx, doc.Questions); err != nil {
			return 0, fmt.Errorf("replace bank: %w", err)
		}
		s.log.Info("bank mutated", zap.String("kind", "replace"), zap.String("source", "file"), zap.Int("count", len(doc.Questions)))
		return len(doc.Questions), nil
	}
	if err := s.Append(ctx, "file", doc.Questions); err != nil {
		return 0, err
	}
	return len(doc.Questions), nil
}
