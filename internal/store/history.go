package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/quiz"
)

type historyRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	log *zap.Logger
}

func (r *historyRepo) Append(ctx context.Context, sessionID string, records []quiz.Record) error {
	if len(records) == 0 {
		return nil
	}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		seen, err := sessionExists(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if seen {
			return fmt.Errorf("%w: %s", ErrDuplicateSession, sessionID)
		}
		for _, rec := range records {
			seq, err := r.seq.Next(ctx, tx)
			if err != nil {
				return err
			}
			query, args := builder().Insert(tableAttempts).
				Columns(colSequence, colSessionID, colTimestamp, colQuestionID,
					colIsCorrect, colUserAnswer, colCategory).
				Values(seq, sessionID, rec.Timestamp.UnixMilli(), rec.QuestionID,
					rec.IsCorrect, rec.UserAnswer, rec.Category).
				Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert attempt: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	correct, total := quiz.Score(records)
	r.log.Info("history persisted",
		zap.String("session_id", sessionID),
		zap.Int("records", total),
		zap.Int("correct", correct),
	)
	return nil
}

func (r *historyRepo) All(ctx context.Context) ([]quiz.Record, error) {
	query, args := builder().Select(colTimestamp, colQuestionID, colIsCorrect, colUserAnswer, colCategory).
		From(entsql.Table(tableAttempts)).
		OrderBy(colSequence).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []quiz.Record
	for rows.Next() {
		var (
			rec quiz.Record
			ms  int64
		)
		if err := rows.Scan(&ms, &rec.QuestionID, &rec.IsCorrect, &rec.UserAnswer, &rec.Category); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ms)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *historyRepo) Reset(ctx context.Context) error {
	query, args := builder().Delete(tableAttempts).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	n, _ := res.RowsAffected()
	r.log.Info("history reset", zap.Int64("deleted", n))
	return nil
}

func (r *historyRepo) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, tableAttempts)
}

// sessionExists reports whether records for sessionID were already written.
func sessionExists(ctx context.Context, q queryer, sessionID string) (bool, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table(tableAttempts)).
		Where(entsql.EQ(colSessionID, sessionID)).
		Query()
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("check session %q: %w", sessionID, err)
	}
	return n > 0, nil
}

func (r *historyRepo) Sessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	sel := builder().Select(colSessionID, entsql.Max(colCategory), entsql.Min(colTimestamp),
		entsql.Count("*"), entsql.Sum(colIsCorrect)).
		From(entsql.Table(tableAttempts)).
		GroupBy(colSessionID).
		OrderBy(entsql.Desc(entsql.Min(colSequence)))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			s  SessionSummary
			ms int64
		)
		if err := rows.Scan(&s.SessionID, &s.Category, &ms, &s.Total, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.StartedAt = time.UnixMilli(ms)
		out = append(out, s)
	}
	return out, rows.Err()
}
