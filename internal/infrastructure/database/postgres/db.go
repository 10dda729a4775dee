package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"library-store/internal/infrastructure/monitoring"
	"library-store/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var errMsgFormat = "%w: %w"

type rowScanner interface {
	Scan(dest ...any) error
}

// translateDBError maps constraint violations to application errors. Any
// other failure is returned as ErrDatabase.
func translateDBError(err error, logger *slog.Logger) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			logger.Warn("Unique constraint violation", "constraint", pgErr.ConstraintName, "detail", pgErr.Detail)
			return fmt.Errorf(errMsgFormat, apperrors.ErrAlreadyExists, err)
		case pgForeignKeyViolation:
			logger.Warn("Foreign key violation", "constraint", pgErr.ConstraintName, "detail", pgErr.Detail)
			return fmt.Errorf(errMsgFormat, apperrors.ErrInvalidArgument, err)
		}
	}
	return apperrors.WrapDatabaseError(err, "database operation failed")
}

// withTx runs fn inside a transaction and commits it, rolling back on any error.
func withTx(ctx context.Context, db DBPool, logger *slog.Logger, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to begin transaction")
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to commit transaction")
	}
	return nil
}

func observe(queryName string, start time.Time, err error) {
	status := "success"
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		status = "error"
	}
	monitoring.RecordDBQuery(queryName, status, time.Since(start))
}

func count(ctx context.Context, db DBPool, logger *slog.Logger, table string) (int64, error) {
	start := time.Now()
	var n int64
	err := db.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	observe("Count_"+table, start, err)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count rows", slog.String("table", table), slog.Any("error", err))
		return 0, apperrors.WrapDatabaseError(err, "failed to count "+table)
	}
	return n, nil
}
