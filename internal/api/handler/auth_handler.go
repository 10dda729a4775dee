package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"library-store/internal/api/handler/dto"
	"library-store/internal/auth"
	"library-store/internal/domain/account"
	"library-store/internal/pkg/apperrors"
)

type AuthHandler struct {
	accounts account.Manager
	tokens   *auth.TokenService
	logger   *slog.Logger
}

func NewAuthHandler(accounts account.Manager, tokens *auth.TokenService, l *slog.Logger) *AuthHandler {
	if accounts == nil || tokens == nil {
		panic("auth handler dependencies cannot be nil")
	}
	return &AuthHandler{
		accounts: accounts,
		tokens:   tokens,
		logger:   l.With("component", "AuthHandler"),
	}
}

// GenerateBearerToken exchanges account credentials for a signed JWT.
//
// @Summary Generate a JWT bearer token
// @Description Verifies email and password and returns a bearer token carrying the customer's roles.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	cust, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			h.logger.ErrorContext(r.Context(), "Authentication failed", slog.Any("error", err))
		}
		respondError(w, err)
		return
	}

	token, err := h.tokens.Issue(cust.CustomerID, req.Email, cust.Roles)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Bearer token issued", slog.Int64("customerID", cust.CustomerID), slog.Any("roles", cust.Roles))
	respondJSON(w, http.StatusOK, dto.TokenResponse{Token: "Bearer " + token})
}
