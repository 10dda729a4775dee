package dto

import (
	"library-store/internal/domain/catalog"
	"library-store/internal/domain/membership"
)

type MembershipTypeResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	SignUpFee        string `json:"signUpFee"`
	DurationInMonths int    `json:"durationInMonths"`
	DiscountRate     string `json:"discountRate"`
}

func NewMembershipTypeResponse(mt *membership.MembershipType) MembershipTypeResponse {
	if mt == nil {
		return MembershipTypeResponse{}
	}
	return MembershipTypeResponse{
		ID:               mt.ID,
		Name:             mt.Name,
		SignUpFee:        mt.SignUpFee.StringFixed(2),
		DurationInMonths: mt.DurationInMonths,
		DiscountRate:     mt.DiscountRate.String(),
	}
}

func NewMembershipTypeListResponse(types []*membership.MembershipType) []MembershipTypeResponse {
	resp := make([]MembershipTypeResponse, 0, len(types))
	for _, mt := range types {
		resp = append(resp, NewMembershipTypeResponse(mt))
	}
	return resp
}

type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewGenreListResponse(genres []*catalog.Genre) []GenreResponse {
	resp := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		resp = append(resp, GenreResponse{ID: g.ID, Name: g.Name})
	}
	return resp
}

type BookResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	AuthorName    string `json:"authorName"`
	GenreID       int64  `json:"genreId"`
	GenreName     string `json:"genreName"`
	ReleaseDate   string `json:"releaseDate"`
	DateAdded     string `json:"dateAdded"`
	NumberInStock int    `json:"numberInStock"`
	Available     bool   `json:"available"`
}

func NewBookResponse(b *catalog.Book) BookResponse {
	if b == nil {
		return BookResponse{}
	}
	return BookResponse{
		ID:            b.ID,
		Name:          b.Name,
		AuthorName:    b.AuthorName,
		GenreID:       b.GenreID,
		GenreName:     b.GenreName,
		ReleaseDate:   b.ReleaseDate.Format(DateLayout),
		DateAdded:     b.DateAdded.Format(DateLayout),
		NumberInStock: b.NumberInStock,
		Available:     b.InStock(),
	}
}

func NewBookListResponse(books []*catalog.Book) []BookResponse {
	resp := make([]BookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, NewBookResponse(b))
	}
	return resp
}
