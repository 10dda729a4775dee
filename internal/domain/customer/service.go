package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"library-store/internal/domain/membership"
	"library-store/internal/event"
	"library-store/internal/infrastructure/monitoring"
	"library-store/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found by repository"

type CustomerService interface {
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	ListNewsletterSubscribers(ctx context.Context) ([]*Customer, error)
	NewCustomerForm(ctx context.Context) (*CustomerForm, error)
	EditCustomerForm(ctx context.Context, customerID int64) (*CustomerForm, error)
	MembershipTypes(ctx context.Context) ([]*membership.MembershipType, error)
	SaveCustomer(ctx context.Context, cust *Customer) (*Customer, error)
}

// CustomerForm is what the create and edit screens render.
type CustomerForm struct {
	Customer        *Customer
	MembershipTypes []*membership.MembershipType
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo        CustomerRepository
	memberships membership.Repository
	pub         event.EventPublisher
	logger      *slog.Logger
}

func NewCustomerService(repo CustomerRepository, memberships membership.Repository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if memberships == nil {
		panic("membership repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if eventPublisher == nil {
		logger.Warn("No event publisher provided to NewCustomerService, customer events will not be published")
	}

	return &customerService{
		repo:        repo,
		memberships: memberships,
		pub:         eventPublisher,
		logger:      logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:              cust.CustomerID,
		Name:                    cust.Name,
		Email:                   cust.Email,
		MembershipTypeID:        cust.MembershipTypeID,
		HasNewsletterSubscribed: cust.HasNewsletterSubscribed,
		Birthdate:               cust.Birthdate,
		CreatedAt:               cust.CreatedAt,
		UpdatedAt:               cust.UpdatedAt,
	}
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, apperrors.ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	logger.DebugContext(ctx, "Successfully retrieved customer")
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.DebugContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) ListNewsletterSubscribers(ctx context.Context) ([]*Customer, error) {
	customers, err := s.repo.FindNewsletterSubscribers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing newsletter subscribers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list newsletter subscribers: %w", err)
	}
	return customers, nil
}

func (s *customerService) MembershipTypes(ctx context.Context) ([]*membership.MembershipType, error) {
	types, err := s.memberships.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing membership types", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list membership types: %w", err)
	}
	return types, nil
}

func (s *customerService) NewCustomerForm(ctx context.Context) (*CustomerForm, error) {
	types, err := s.MembershipTypes(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomerForm{Customer: &Customer{}, MembershipTypes: types}, nil
}

func (s *customerService) EditCustomerForm(ctx context.Context, customerID int64) (*CustomerForm, error) {
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	types, err := s.MembershipTypes(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomerForm{Customer: customer, MembershipTypes: types}, nil
}

// SaveCustomer inserts cust when its id is zero. Otherwise it loads the stored
// record and applies only the fields of CustomerUpdate to it.
func (s *customerService) SaveCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logger := s.logger.With(slog.Int64("customerID", cust.CustomerID))

	mt, err := s.memberships.FindByID(ctx, cust.MembershipTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Validation failed: unknown membership type", slog.Int64("membershipTypeID", cust.MembershipTypeID))
			return nil, apperrors.NewValidationError("membershipTypeId", "membership type does not exist")
		}
		logger.ErrorContext(ctx, "Repository error resolving membership type", slog.Any("error", err))
		return nil, fmt.Errorf("failed to resolve membership type %d: %w", cust.MembershipTypeID, err)
	}

	if cust.IsNew() {
		return s.addCustomer(ctx, cust, mt)
	}
	return s.updateCustomer(ctx, cust, mt)
}

func (s *customerService) addCustomer(ctx context.Context, cust *Customer, mt *membership.MembershipType) (*Customer, error) {
	if cust.SecurityStamp == "" {
		cust.SecurityStamp = NewSecurityStamp()
	}

	if err := s.repo.Add(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to add new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}
	cust.MembershipTypeName = mt.Name
	monitoring.RecordCustomerSaved("created")

	logger := s.logger.With(slog.Int64("customerID", cust.CustomerID))
	logger.InfoContext(ctx, "Successfully created new customer")

	if s.pub != nil {
		createdEvent := event.CustomerCreatedEvent{
			Timestamp: time.Now(),
			Payload:   NewCustomerEventPayload(cust),
		}
		if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
			logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
		}
	}
	return cust, nil
}

func (s *customerService) updateCustomer(ctx context.Context, cust *Customer, mt *membership.MembershipType) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", cust.CustomerID))

	existing, err := s.repo.FindByID(ctx, cust.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Customer not found by repository for update")
			return nil, apperrors.ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %d to update: %w", cust.CustomerID, err)
	}

	changes := cust.Changes()
	if err := s.repo.Update(ctx, existing.CustomerID, changes); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.ErrorContext(ctx, "Customer disappeared before update completed")
			return nil, apperrors.ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer %d: %w", cust.CustomerID, err)
	}
	existing.Apply(changes)
	existing.MembershipTypeName = mt.Name
	monitoring.RecordCustomerSaved("updated")
	logger.InfoContext(ctx, "Successfully updated customer")

	if s.pub != nil {
		updatedEvent := event.CustomerUpdatedEvent{
			Timestamp: time.Now(),
			Payload:   NewCustomerEventPayload(existing),
		}
		if pubErr := s.pub.PublishCustomerUpdated(ctx, updatedEvent); pubErr != nil {
			logger.ErrorContext(ctx, "Customer updated, but FAILED to publish update event", slog.Any("error", pubErr))
		}
	}
	return existing, nil
}
