package store

import (
	"context"
	"errors"

	perr "github.com/sspenst/thinky.gg-sub004/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

// Scalar queries the first row, first column into T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, perr.ErrNotFound
		}
		return zero, err
	}
	return v, nil
}

// Many maps every row through scan
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ExecAffected runs a write and returns the affected row count
func ExecAffected(ctx context.Context, q RowQuerier, sql string, args ...any) (int64, error) {
	ct, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	if ct == nil {
		return 0, nil
	}
	return ct.RowsAffected(), nil
}
