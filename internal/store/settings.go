package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	return getSetting(ctx, r.db, key)
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	return setSetting(ctx, r.db, key, value)
}

func (r *settingsRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(tableSettings).
		Where(entsql.EQ(colKey, key)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

func getSetting(ctx context.Context, q queryer, key string) (string, bool, error) {
	query, args := builder().Select(colValue).
		From(entsql.Table(tableSettings)).
		Where(entsql.EQ(colKey, key)).
		Query()
	var v string
	err := q.QueryRowContext(ctx, query, args...).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return v, true, nil
}

func setSetting(ctx context.Context, q queryer, key, value string) error {
	query, args := builder().Insert(tableSettings).
		Columns(colKey, colValue).
		Values(key, value).
		OnConflict(entsql.ConflictColumns(colKey), entsql.ResolveWithNewValues()).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}
