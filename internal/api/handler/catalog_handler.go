package handler

import (
	"log/slog"
	"net/http"

	"library-store/internal/api/handler/dto"
	"library-store/internal/domain/catalog"
)

const bookIDParam = "bookID"

type CatalogHandler struct {
	service catalog.Service
	logger  *slog.Logger
}

func NewCatalogHandler(s catalog.Service, l *slog.Logger) *CatalogHandler {
	if s == nil {
		panic("catalog service cannot be nil")
	}
	return &CatalogHandler{
		service: s,
		logger:  l.With("component", "CatalogHandler"),
	}
}

// ListBooks handles GET /books
// @Summary List books
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.BookResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books [get]
// @Security BearerAuth
func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list books", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewBookListResponse(books))
}

// GetBook handles GET /books/{bookID}
// @Summary Retrieve a book
// @Tags Catalog
// @Produce json
// @Param bookID path int true "Book ID" Minimum(1)
// @Success 200 {object} dto.BookResponse
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Router /books/{bookID} [get]
// @Security BearerAuth
func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := getIDFromURL(r, bookIDParam)
	if err != nil {
		respondError(w, err)
		return
	}
	book, err := h.service.GetBook(r.Context(), bookID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to get book", slog.Int64("bookID", bookID), slog.Any("error", err))
		respondErrorMessage(w, err, "Book not found")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewBookResponse(book))
}

// ListGenres handles GET /genres
// @Summary List genres
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.GenreResponse
// @Router /genres [get]
// @Security BearerAuth
func (h *CatalogHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.ListGenres(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list genres", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewGenreListResponse(genres))
}

// ListMembershipTypes handles GET /membership-types
// @Summary List membership types
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.MembershipTypeResponse
// @Router /membership-types [get]
// @Security BearerAuth
func (h *CatalogHandler) ListMembershipTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListMembershipTypes(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list membership types", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewMembershipTypeListResponse(types))
}
