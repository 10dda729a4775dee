package catalog

import (
	"context"
	"time"
)

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Book struct {
	ID            int64     `json:"id"`
	GenreID       int64     `json:"genreId"`
	GenreName     string    `json:"genreName,omitempty"`
	Name          string    `json:"name"`
	AuthorName    string    `json:"authorName"`
	ReleaseDate   time.Time `json:"releaseDate"`
	DateAdded     time.Time `json:"dateAdded"`
	NumberInStock int       `json:"numberInStock"`
}

func (b *Book) InStock() bool {
	return b.NumberInStock > 0
}

type GenreRepository interface {
	FindAll(ctx context.Context) ([]*Genre, error)

	Count(ctx context.Context) (int64, error)

	InsertMany(ctx context.Context, genres []Genre) error
}

type BookRepository interface {
	FindAll(ctx context.Context) ([]*Book, error)

	FindByID(ctx context.Context, bookID int64) (*Book, error)

	Count(ctx context.Context) (int64, error)

	InsertMany(ctx context.Context, books []Book) error
}
