package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/question"
)

var questionColumns = []string{
	colID, colKind, colText, colOptions, colAnswer, colCategory,
	colOriginalText, colExplanation, colIsAI,
}

type bankRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func (r *bankRepo) List(ctx context.Context) ([]question.Question, error) {
	query, args := builder().Select(questionColumns...).
		From(entsql.Table(tableQuestions)).
		OrderBy(colPosition, colCreatedAt).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []question.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *bankRepo) Get(ctx context.Context, id string) (question.Question, error) {
	query, args := builder().Select(questionColumns...).
		From(entsql.Table(tableQuestions)).
		Where(entsql.EQ(colID, id)).
		Query()
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return question.Question{}, fmt.Errorf("question %q: %w", id, ErrNotFound)
	}
	return q, err
}

func (r *bankRepo) Add(ctx context.Context, q question.Question) error {
	return r.AddMany(ctx, []question.Question{q})
}

func (r *bankRepo) AddMany(ctx context.Context, qs []question.Question) error {
	if err := validateAll(qs); err != nil {
		return err
	}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		pos, err := nextPosition(ctx, tx)
		if err != nil {
			return err
		}
		for i, q := range qs {
			exists, err := questionExists(ctx, tx, q.ID)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("question %q: %w", q.ID, ErrDuplicateID)
			}
			if err := insertQuestion(ctx, tx, q, pos+int64(i)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.log.Info("questions added", zap.Int("count", len(qs)))
	return nil
}

func (r *bankRepo) Update(ctx context.Context, q question.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	opts, err := encodeOptions(q.Options)
	if err != nil {
		return err
	}
	query, args := builder().Update(tableQuestions).
		Set(colKind, string(q.Kind)).
		Set(colText, q.Text).
		Set(colOptions, opts).
		Set(colAnswer, q.Answer).
		Set(colCategory, q.Category).
		Set(colOriginalText, q.OriginalText).
		Set(colExplanation, q.Explanation).
		Set(colIsAI, q.IsAI).
		Where(entsql.EQ(colID, q.ID)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	if err := expectRow(res, q.ID); err != nil {
		return err
	}
	r.log.Info("question updated", zap.String("id", q.ID))
	return nil
}

func (r *bankRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete(tableQuestions).
		Where(entsql.EQ(colID, id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if err := expectRow(res, id); err != nil {
		return err
	}
	r.log.Info("question deleted", zap.String("id", id))
	return nil
}

func (r *bankRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(tableQuestions).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	n, _ := res.RowsAffected()
	r.log.Info("bank cleared", zap.Int64("count", n))
	return nil
}

func (r *bankRepo) Replace(ctx context.Context, qs []question.Question) error {
	if err := validateAll(qs); err != nil {
		return err
	}
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			return fmt.Errorf("question %q: %w", q.ID, ErrDuplicateID)
		}
		seen[q.ID] = true
	}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args := builder().Delete(tableQuestions).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear questions: %w", err)
		}
		for i, q := range qs {
			if err := insertQuestion(ctx, tx, q, int64(i)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.log.Info("bank replaced", zap.Int("count", len(qs)))
	return nil
}

func (r *bankRepo) Categories(ctx context.Context) ([]question.CategoryCount, error) {
	qs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return question.Categories(qs), nil
}

func (r *bankRepo) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, tableQuestions)
}

func (r *bankRepo) SeedIfEmpty(ctx context.Context, qs []question.Question) (bool, error) {
	if err := validateAll(qs); err != nil {
		return false, err
	}
	seeded := false
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, done, err := getSetting(ctx, tx, SettingBankSeeded)
		if err != nil || done {
			return err
		}
		n, err := countRows(ctx, tx, tableQuestions)
		if err != nil {
			return err
		}
		if n == 0 {
			for i, q := range qs {
				if err := insertQuestion(ctx, tx, q, int64(i)); err != nil {
					return err
				}
			}
			seeded = true
		}
		return setSetting(ctx, tx, SettingBankSeeded, "true")
	})
	if err != nil {
		return false, err
	}
	if seeded {
		r.log.Info("bank seeded", zap.Int("count", len(qs)))
	}
	return seeded, nil
}

func validateAll(qs []question.Question) error {
	for _, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %q: %w", q.ID, err)
		}
	}
	return nil
}

func insertQuestion(ctx context.Context, q queryer, item question.Question, pos int64) error {
	opts, err := encodeOptions(item.Options)
	if err != nil {
		return err
	}
	query, args := builder().Insert(tableQuestions).
		Columns(append([]string{colPosition, colCreatedAt}, questionColumns...)...).
		Values(pos, time.Now().UnixMilli(), item.ID, string(item.Kind), item.Text, opts,
			item.Answer, item.Category, item.OriginalText, item.Explanation, item.IsAI).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert question %q: %w", item.ID, err)
	}
	return nil
}

func questionExists(ctx context.Context, q queryer, id string) (bool, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table(tableQuestions)).
		Where(entsql.EQ(colID, id)).
		Query()
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("check question %q: %w", id, err)
	}
	return n > 0, nil
}

func nextPosition(ctx context.Context, q queryer) (int64, error) {
	query, args := builder().Select("COALESCE(MAX(position), -1)").
		From(entsql.Table(tableQuestions)).
		Query()
	var max int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("max position: %w", err)
	}
	return max + 1, nil
}

func countRows(ctx context.Context, q queryer, table string) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table(table)).
		Query()
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func expectRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("question %q: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (question.Question, error) {
	var (
		q    question.Question
		kind string
		opts string
	)
	err := row.Scan(&q.ID, &kind, &q.Text, &opts, &q.Answer, &q.Category,
		&q.OriginalText, &q.Explanation, &q.IsAI)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return q, err
		}
		return q, fmt.Errorf("scan question: %w", err)
	}
	q.Kind = question.Kind(kind)
	if opts != "" {
		if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
			return q, fmt.Errorf("decode options of %q: %w", q.ID, err)
		}
	}
	if len(q.Options) == 0 {
		q.Options = nil
	}
	return q, nil
}

func encodeOptions(opts []string) (string, error) {
	if opts == nil {
		opts = []string{}
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("encode options: %w", err)
	}
	return string(b), nil
}
