package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"library-store/internal/api/handler/dto"
	"library-store/internal/domain/customer"
	"library-store/internal/pkg/apperrors"
)

const (
	customerIDParam     = "customerID"
	customerNotFoundMsg = "User not found"
	customersPath       = "/customers"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// ListCustomers handles GET /customers
// @Summary List customers
// @Description Lists every customer with its membership type.
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse "List of customers"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", len(customers)))
	respondJSON(w, http.StatusOK, dto.NewCustomerListResponse(customers))
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Retrieve customer details
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CustomerResponse "Customer details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, customerIDParam)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	cust, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logServiceError(r, "Service failed to get customer", err)
		respondErrorMessage(w, err, customerNotFoundMsg)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// NewCustomer handles GET /customers/new
// @Summary Empty customer form
// @Description Returns an empty customer together with the selectable membership types.
// @Tags Customers
// @Produce json
// @Success 200 {object} dto.CustomerFormResponse
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Router /customers/new [get]
// @Security BearerAuth
func (h *CustomerHandler) NewCustomer(w http.ResponseWriter, r *http.Request) {
	form, err := h.service.NewCustomerForm(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to build new customer form", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerFormResponse(form))
}

// EditCustomer handles GET /customers/{customerID}/edit
// @Summary Customer edit form
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CustomerFormResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /customers/{customerID}/edit [get]
// @Security BearerAuth
func (h *CustomerHandler) EditCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, customerIDParam)
	if err != nil {
		respondError(w, err)
		return
	}

	form, err := h.service.EditCustomerForm(r.Context(), customerID)
	if err != nil {
		h.logServiceError(r, "Service failed to build edit customer form", err)
		respondErrorMessage(w, err, customerNotFoundMsg)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerFormResponse(form))
}

// SaveCustomer handles POST /customers/save
// @Summary Create or update a customer
// @Description A customerId of 0 creates a customer. Any other id updates name, birthdate, membership type and newsletter flag of that customer.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerFormRequest true "Customer form"
// @Success 303 "Redirect to /customers"
// @Failure 400 {object} dto.CustomerFormResponse "Submitted form with field errors"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /customers/save [post]
// @Security BearerAuth
func (h *CustomerHandler) SaveCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerFormRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := req.Validate(); err != nil {
		var vErrs dto.ValidationErrors
		if !errors.As(err, &vErrs) {
			respondError(w, err)
			return
		}
		h.logger.WarnContext(r.Context(), "Customer form failed validation", slog.Int("errors", len(vErrs)))
		h.respondInvalidForm(w, r, req, vErrs)
		return
	}

	saved, err := h.service.SaveCustomer(r.Context(), req.ToCustomer())
	if err != nil {
		if vErr, ok := apperrors.AsValidationError(err); ok {
			h.respondInvalidForm(w, r, req, dto.ValidationErrors{{Field: vErr.Field, Message: vErr.Message}})
			return
		}
		h.logServiceError(r, "Service failed to save customer", err)
		respondErrorMessage(w, err, customerNotFoundMsg)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer saved", slog.Int64("customerID", saved.CustomerID))
	http.Redirect(w, r, customersPath, http.StatusSeeOther)
}

// respondInvalidForm echoes the submitted form with its errors and the
// membership types needed to render it again.
func (h *CustomerHandler) respondInvalidForm(w http.ResponseWriter, r *http.Request, req dto.CustomerFormRequest, fieldErrs dto.ValidationErrors) {
	types, err := h.service.MembershipTypes(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list membership types", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusBadRequest, dto.CustomerFormResponse{
		Customer:        req,
		MembershipTypes: dto.NewMembershipTypeListResponse(types),
		Errors:          fieldErrs,
	})
}

func (h *CustomerHandler) logServiceError(r *http.Request, msg string, err error) {
	level := slog.LevelError
	if errors.Is(err, apperrors.ErrNotFound) {
		level = slog.LevelWarn
	}
	h.logger.Log(r.Context(), level, msg, slog.Any("error", err))
}
