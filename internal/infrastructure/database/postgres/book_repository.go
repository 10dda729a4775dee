package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"library-store/internal/domain/catalog"
	"library-store/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	bookColumns = `b.id, b.genre_id, g.name, b.name, b.author_name, b.release_date, b.date_added, b.number_in_stock`

	selectBooksQuery = `
        SELECT ` + bookColumns + `
        FROM books b
        JOIN genres g ON g.id = b.genre_id
        ORDER BY b.id`

	selectBookByIDQuery = `
        SELECT ` + bookColumns + `
        FROM books b
        JOIN genres g ON g.id = b.genre_id
        WHERE b.id = $1`

	insertBookQuery = `
        INSERT INTO books (genre_id, name, author_name, release_date, date_added, number_in_stock)
        VALUES ($1, $2, $3, $4, $5, $6)`
)

type BookRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ catalog.BookRepository = (*BookRepository)(nil)

func NewBookRepository(db DBPool, logger *slog.Logger) *BookRepository {
	if db == nil {
		panic("DBPool cannot be nil for BookRepository")
	}
	return &BookRepository{db: db, logger: logger.With("component", "BookRepository")}
}

func scanBook(row rowScanner) (*catalog.Book, error) {
	var b catalog.Book
	err := row.Scan(&b.ID, &b.GenreID, &b.GenreName, &b.Name, &b.AuthorName, &b.ReleaseDate, &b.DateAdded, &b.NumberInStock)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookRepository) FindAll(ctx context.Context) ([]*catalog.Book, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, selectBooksQuery)
	if err != nil {
		observe("FindAllBooks", start, err)
		r.logger.ErrorContext(ctx, "Failed to query books", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to query books")
	}
	defer rows.Close()

	books := make([]*catalog.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			observe("FindAllBooks", start, err)
			r.logger.ErrorContext(ctx, "Failed to scan book row", slog.Any("error", err))
			return nil, apperrors.WrapDatabaseError(err, "failed to scan book")
		}
		books = append(books, b)
	}
	err = rows.Err()
	observe("FindAllBooks", start, err)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err, "error iterating books")
	}
	return books, nil
}

func (r *BookRepository) FindByID(ctx context.Context, bookID int64) (*catalog.Book, error) {
	start := time.Now()
	b, err := scanBook(r.db.QueryRow(ctx, selectBookByIDQuery, bookID))
	observe("FindBookByID", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Book not found", slog.Int64("bookID", bookID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find book", slog.Int64("bookID", bookID), slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to find book")
	}
	return b, nil
}

func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.logger, "books")
}

func (r *BookRepository) InsertMany(ctx context.Context, books []catalog.Book) error {
	return withTx(ctx, r.db, r.logger, func(tx pgx.Tx) error {
		for _, b := range books {
			_, err := tx.Exec(ctx, insertBookQuery, b.GenreID, b.Name, b.AuthorName, b.ReleaseDate, b.DateAdded, b.NumberInStock)
			if err != nil {
				r.logger.ErrorContext(ctx, "Failed to insert book", slog.String("name", b.Name), slog.Any("error", err))
				return translateDBError(err, r.logger)
			}
		}
		return nil
	})
}
