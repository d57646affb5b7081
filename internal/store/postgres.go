package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// SQLStore implements Store on top of Postgres via sqlx.
type SQLStore struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

// NewSQLStore wraps an open sqlx connection pool.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, ext: db}
}

// WithTx runs fn against a transaction-bound copy of the store. Nested
// calls reuse the enclosing transaction.
func (s *SQLStore) WithTx(ctx context.Context, fn func(Store) error) error {
	if _, ok := s.ext.(*sqlx.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txStore := &SQLStore{db: s.db, ext: tx}
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// checkConstraint maps the Postgres check-violation on the non-negative
// balance constraint onto the sentinel the services branch on.
func checkConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "check_violation":
			return ErrInsufficientFunds
		case "unique_violation":
			return ErrAlreadyExists
		}
	}
	return err
}

func notFoundOr(err error, wrap string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", wrap, err)
}

func sqlxGet(ctx context.Context, ext sqlx.ExtContext, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, ext, dest, query, args...)
}

func sqlxSelect(ctx context.Context, ext sqlx.ExtContext, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, ext, dest, query, args...)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
