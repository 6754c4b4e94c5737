package aigen

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/llm"
	"github.com/abhisek/wordwise/internal/question"
)

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	now      func() time.Time
	log      *zap.Logger
}

var _ Generator = (*LLMGenerator)(nil)

// Option configures an LLMGenerator.
type Option func(*LLMGenerator)

// WithClock overrides the clock used for question IDs.
func WithClock(now func() time.Time) Option {
	return func(g *LLMGenerator) { g.now = now }
}

// WithLogger sets the logger for generation outcomes.
func WithLogger(l *zap.Logger) Option {
	return func(g *LLMGenerator) { g.log = l }
}

// New creates an LLMGenerator.
func New(provider llm.Provider, cfg Config, opts ...Option) *LLMGenerator {
	g := &LLMGenerator{provider: provider, config: cfg, now: time.Now, log: zap.NewNop()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// rawQuestion is one item of LLM output before normalization.
type rawQuestion struct {
	Question    string   `json:"question"`
	Type        string   `json:"type"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Category    string   `json:"category"`
}

type questionsOutput struct {
	Questions []rawQuestion `json:"questions"`
}

type analysisOutput struct {
	Type        string   `json:"type"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Category    string   `json:"category"`
}

func (g *LLMGenerator) Similar(ctx context.Context, base []question.Question, category string) (*Batch, error) {
	if len(base) == 0 {
		return nil, ErrNoBase
	}
	sample := base[:min(len(base), g.config.BaseSample)]

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildSimilarMessage(sample, category, g.config.SimilarCount)}},
		Schema:      SimilarSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	out, err := g.generateQuestions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate similar questions: %w", err)
	}

	batch, err := g.collect(out, question.PrefixAI, &Input{Category: category, Base: base}, true)
	g.logOutcome("ai questions generated", batch, err, zap.String("category", category))
	return batch, err
}

func (g *LLMGenerator) Analyze(ctx context.Context, text string) (*Analysis, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionAnalyze)
	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildAnalyzeMessage(text)}},
		Schema:      AnalyzeSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: 0.2,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analyze question: %w", err)
	}
	raw, err := llm.Decode[analysisOutput](resp)
	if err != nil {
		return nil, fmt.Errorf("analyze question: %w", err)
	}

	q := question.Normalize(question.Question{
		Kind:        question.Kind(raw.Type),
		Options:     raw.Options,
		Answer:      raw.Answer,
		Explanation: raw.Explanation,
		Category:    raw.Category,
	})
	a := &Analysis{
		Kind:        q.Kind,
		Options:     q.Options,
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}
	if raw.Category != "" {
		a.Category = q.Category
	}
	return a, nil
}

func (g *LLMGenerator) Extract(ctx context.Context, img Image) (*Batch, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeWorksheetOCR)
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: buildExtractMessage(g.config.OCRCategories),
			Images:  []llm.Image{img},
		}},
		Schema:      ExtractSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: 0.2,
	}

	out, err := g.generateQuestions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("extract worksheet questions: %w", err)
	}

	batch, err := g.collect(out, question.PrefixOCR, &Input{}, false)
	g.logOutcome("worksheet questions extracted", batch, err, zap.Int("image_bytes", len(img.Data)))
	return batch, err
}

func (g *LLMGenerator) generateQuestions(ctx context.Context, req llm.Request) ([]rawQuestion, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := llm.Decode[questionsOutput](resp)
	if err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// collect normalizes raw items, assigns IDs and runs the validator chain.
func (g *LLMGenerator) collect(items []rawQuestion, prefix string, in *Input, isAI bool) (*Batch, error) {
	now := g.now()
	batch := &Batch{}

	for i, raw := range items {
		category := raw.Category
		if category == "" {
			category = in.Category
		}
		q := question.Normalize(question.Question{
			ID:          question.NewID(prefix, now, i),
			Kind:        question.Kind(raw.Type),
			Text:        raw.Question,
			Options:     raw.Options,
			Answer:      raw.Answer,
			Explanation: raw.Explanation,
			Category:    category,
			IsAI:        isAI,
		})

		if verr := g.validate(q, in); verr != nil {
			batch.Dropped = append(batch.Dropped, Dropped{Index: i, Text: q.Text, Reason: verr.Error()})
			continue
		}
		batch.Questions = append(batch.Questions, q)
	}

	if len(batch.Questions) == 0 {
		return batch, fmt.Errorf("%w (%d dropped)", ErrNoValidQuestions, len(batch.Dropped))
	}
	return batch, nil
}

func (g *LLMGenerator) validate(q question.Question, in *Input) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, in); verr != nil {
			return verr
		}
	}
	return nil
}

func (g *LLMGenerator) logOutcome(msg string, batch *Batch, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("model", g.provider.ModelID()),
		zap.Int("accepted", len(batch.Questions)),
		zap.Int("dropped", len(batch.Dropped)))
	for _, d := range batch.Dropped {
		g.log.Debug("dropped generated question", zap.Int("index", d.Index), zap.String("reason", d.Reason))
	}
	if err != nil {
		g.log.Warn(msg, append(fields, zap.Error(err))...)
		return
	}
	g.log.Info(msg, fields...)
}
