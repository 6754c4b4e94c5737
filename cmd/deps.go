package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/aigen"
	"github.com/abhisek/wordwise/internal/config"
	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/library"
	"github.com/abhisek/wordwise/internal/llm"
	"github.com/abhisek/wordwise/internal/logging"
	"github.com/abhisek/wordwise/internal/parent"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/store"
)

// deps is everything a command needs, built once from flags and config.
type deps struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	env   *screen.Env

	// aiErr explains why AI features are off; nil when they are on.
	aiErr error
}

// openDeps loads config, opens the log and the database, seeds a new bank
// and resolves the LLM provider. tui keeps the console log off because the
// TUI owns the terminal.
func openDeps(cmd *cobra.Command, tui bool) (*deps, error) {
	ctx := cmd.Context()

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := logging.New(cfg.Logging(verbose && !tui))
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	st, err := openDB(cmd, cfg, log)
	if err != nil {
		return nil, err
	}

	bank := st.BankRepo()
	settings := st.SettingsRepo()
	if seeded, err := bank.SeedIfEmpty(ctx, question.Seed()); err != nil {
		st.Close()
		return nil, fmt.Errorf("seed bank: %w", err)
	} else if seeded {
		log.Info("bank seeded", zap.Int("count", len(question.Seed())))
	}

	d := &deps{cfg: cfg, log: log, store: st}

	// gen stays a nil interface unless a provider comes up.
	var gen aigen.Generator
	if llmCfg, ok := cfg.LLMConfig(); ok {
		provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo(), log)
		if err != nil {
			d.aiErr = err
			log.Warn("LLM provider unavailable", zap.Error(err))
		} else {
			gen = aigen.New(provider, aigen.DefaultConfig(), aigen.WithLogger(log))
			log.Debug("LLM provider ready", zap.String("provider", llmCfg.Provider), zap.String("model", provider.ModelID()))
		}
	} else {
		d.aiErr = llm.ErrNotConfigured
		log.Info("AI features disabled: no LLM provider configured")
	}

	lib := library.New(library.Options{
		Bank:         bank,
		Settings:     settings,
		Generator:    gen,
		SheetsAPIKey: cfg.Sheets.APIKey,
		SheetsID:     cfg.Sheets.SheetID,
		SheetsRange:  cfg.Sheets.Range,
		Logger:       log,
	})

	lang, err := i18n.Load(ctx, settings)
	if err != nil {
		log.Warn("language not loaded", zap.Error(err))
	}

	d.env = &screen.Env{
		Bank:     bank,
		History:  st.HistoryRepo(),
		Settings: settings,
		Guard:    parent.NewGuard(settings),
		Library:  lib,
		Sampler:  quiz.DefaultSampler(),
		Logger:   log,
		Lang:     lang,
		Now:      time.Now,
	}
	return d, nil
}

// openStore opens the database without the log file or the AI provider,
// for commands that only read the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return openDB(cmd, cfg, zap.NewNop())
}

// openDB resolves the database path from --db, config, WORDWISE_DB and the
// XDG default, in that order, and opens it.
func openDB(cmd *cobra.Command, cfg *config.Config, log *zap.Logger) (*store.Store, error) {
	dbFlag, _ := cmd.Flags().GetString("db")
	if dbFlag == "" {
		dbFlag = cfg.DB
	}
	dbPath, err := store.DefaultDBPath(dbFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// Close flushes the log and closes the database.
func (d *deps) Close() {
	_ = d.log.Sync()
	if err := d.store.Close(); err != nil {
		d.log.Warn("close store", zap.Error(err))
	}
}

// requireAI returns a user-facing error when AI features are off.
func (d *deps) requireAI() error {
	if d.aiErr == nil {
		return nil
	}
	return fmt.Errorf("AI features are unavailable: %w\nSet GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY, or configure llm.provider", d.aiErr)
}
