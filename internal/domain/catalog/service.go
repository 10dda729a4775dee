package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"library-store/internal/domain/membership"
	"library-store/internal/pkg/apperrors"
)

type Service interface {
	ListBooks(ctx context.Context) ([]*Book, error)
	GetBook(ctx context.Context, bookID int64) (*Book, error)
	ListGenres(ctx context.Context) ([]*Genre, error)
	ListMembershipTypes(ctx context.Context) ([]*membership.MembershipType, error)
}

var _ Service = (*catalogService)(nil)

type catalogService struct {
	books       BookRepository
	genres      GenreRepository
	memberships membership.Repository
	logger      *slog.Logger
}

func NewService(books BookRepository, genres GenreRepository, memberships membership.Repository, logger *slog.Logger) Service {
	if books == nil || genres == nil || memberships == nil {
		panic("catalog repositories cannot be nil")
	}
	return &catalogService{
		books:       books,
		genres:      genres,
		memberships: memberships,
		logger:      logger.With(slog.String("component", "catalogService")),
	}
}

func (s *catalogService) ListBooks(ctx context.Context) ([]*Book, error) {
	books, err := s.books.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing books", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *catalogService) GetBook(ctx context.Context, bookID int64) (*Book, error) {
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Book not found", slog.Int64("bookID", bookID))
			return nil, apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding book", slog.Int64("bookID", bookID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get book %d: %w", bookID, err)
	}
	return book, nil
}

func (s *catalogService) ListGenres(ctx context.Context) ([]*Genre, error) {
	genres, err := s.genres.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing genres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *catalogService) ListMembershipTypes(ctx context.Context) ([]*membership.MembershipType, error) {
	types, err := s.memberships.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing membership types", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list membership types: %w", err)
	}
	return types, nil
}
