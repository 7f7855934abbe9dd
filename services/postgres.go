package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// PostgresTable stores documents as JSONB in the shared records table,
// partitioned by kind.
type PostgresTable[T any] struct {
	db   *sql.DB
	kind string
}

func NewPostgresTable[T any](db *sql.DB, kind string) *PostgresTable[T] {
	return &PostgresTable[T]{db: db, kind: kind}
}

func (t *PostgresTable[T]) Insert(ctx context.Context, row Row[T]) error {
	data, err := json.Marshal(row.Data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t.kind, err)
	}
	_, err = t.db.ExecContext(ctx, `
		INSERT INTO records (id, kind, owner_id, lookup_key, data, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	`, row.ID, t.kind, row.OwnerID, row.Key, data, row.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", t.kind, err)
	}
	return nil
}

func (t *PostgresTable[T]) Get(ctx context.Context, id string) (Row[T], error) {
	return t.scanOne(t.db.QueryRowContext(ctx, `
		SELECT id, owner_id, COALESCE(lookup_key, ''), data, created_at
		FROM records WHERE kind = $1 AND id = $2
	`, t.kind, id))
}

func (t *PostgresTable[T]) GetByKey(ctx context.Context, key string) (Row[T], error) {
	if key == "" {
		return Row[T]{}, ErrNotFound
	}
	return t.scanOne(t.db.QueryRowContext(ctx, `
		SELECT id, owner_id, COALESCE(lookup_key, ''), data, created_at
		FROM records WHERE kind = $1 AND lookup_key = $2
	`, t.kind, key))
}

func (t *PostgresTable[T]) ListByOwner(ctx context.Context, ownerID string) ([]Row[T], error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, owner_id, COALESCE(lookup_key, ''), data, created_at
		FROM records WHERE kind = $1 AND owner_id = $2
		ORDER BY created_at ASC, id ASC
	`, t.kind, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.kind, err)
	}
	defer rows.Close()

	out := []Row[T]{}
	for rows.Next() {
		row, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (t *PostgresTable[T]) Update(ctx context.Context, id string, data T) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t.kind, err)
	}
	res, err := t.db.ExecContext(ctx, `
		UPDATE records SET data = $3, updated_at = NOW() WHERE kind = $1 AND id = $2
	`, t.kind, id, payload)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.kind, err)
	}
	return requireAffected(res)
}

func (t *PostgresTable[T]) Delete(ctx context.Context, id string) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM records WHERE kind = $1 AND id = $2`, t.kind, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.kind, err)
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func (t *PostgresTable[T]) scanOne(s scanner) (Row[T], error) {
	row, err := t.scan(s)
	if errors.Is(err, sql.ErrNoRows) {
		return Row[T]{}, ErrNotFound
	}
	return row, err
}

func (t *PostgresTable[T]) scan(s scanner) (Row[T], error) {
	var row Row[T]
	var data []byte
	if err := s.Scan(&row.ID, &row.OwnerID, &row.Key, &data, &row.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return row, err
		}
		return row, fmt.Errorf("scan %s: %w", t.kind, err)
	}
	if err := json.Unmarshal(data, &row.Data); err != nil {
		return row, fmt.Errorf("decode %s: %w", t.kind, err)
	}
	return row, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
