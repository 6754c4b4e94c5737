package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out one increasing number shared by attempts and
// LLM events, so rows from different tables can be ordered together.
type sequenceCounter struct {
	mu sync.Mutex
}

func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	query, args := builder().Insert(tableSequence).
		Columns(colID, colNextVal).
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{}, nil
}

// Next returns the next sequence number. It runs on q so that callers
// inside a transaction reuse the transaction's connection.
func (sc *sequenceCounter) Next(ctx context.Context, q queryer) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	query, args := builder().Update(tableSequence).
		Set(colNextVal, entsql.Expr(colNextVal+" + 1")).
		Where(entsql.EQ(colID, 1)).
		Returning(colNextVal).
		Query()

	var next int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}
