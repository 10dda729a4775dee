package postgres

import (
	"context"
	"log/slog"
	"time"

	"library-store/internal/domain/catalog"
	"library-store/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	selectGenresQuery = `SELECT id, name FROM genres ORDER BY id`

	insertGenreQuery = `INSERT INTO genres (id, name) VALUES ($1, $2)`
)

type GenreRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ catalog.GenreRepository = (*GenreRepository)(nil)

func NewGenreRepository(db DBPool, logger *slog.Logger) *GenreRepository {
	if db == nil {
		panic("DBPool cannot be nil for GenreRepository")
	}
	return &GenreRepository{db: db, logger: logger.With("component", "GenreRepository")}
}

func (r *GenreRepository) FindAll(ctx context.Context) ([]*catalog.Genre, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, selectGenresQuery)
	if err != nil {
		observe("FindAllGenres", start, err)
		r.logger.ErrorContext(ctx, "Failed to query genres", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to query genres")
	}
	defer rows.Close()

	genres := make([]*catalog.Genre, 0)
	for rows.Next() {
		var g catalog.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			observe("FindAllGenres", start, err)
			return nil, apperrors.WrapDatabaseError(err, "failed to scan genre")
		}
		genres = append(genres, &g)
	}
	err = rows.Err()
	observe("FindAllGenres", start, err)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err, "error iterating genres")
	}
	return genres, nil
}

func (r *GenreRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.logger, "genres")
}

func (r *GenreRepository) InsertMany(ctx context.Context, genres []catalog.Genre) error {
	return withTx(ctx, r.db, r.logger, func(tx pgx.Tx) error {
		for _, g := range genres {
			if _, err := tx.Exec(ctx, insertGenreQuery, g.ID, g.Name); err != nil {
				r.logger.ErrorContext(ctx, "Failed to insert genre", slog.Int64("genreID", g.ID), slog.Any("error", err))
				return translateDBError(err, r.logger)
			}
		}
		return nil
	})
}
