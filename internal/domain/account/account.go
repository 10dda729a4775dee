package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"library-store/internal/domain/customer"
	"library-store/internal/domain/role"
	"library-store/internal/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// Manager creates customers that can sign in and grants them roles.
type Manager interface {
	CreateAccount(ctx context.Context, cust *customer.Customer, password string) error
	CreateAccounts(ctx context.Context, accounts []NewAccount) error
	AddToRole(ctx context.Context, customerID int64, roleName string) error
	Authenticate(ctx context.Context, email, password string) (*customer.Customer, error)
}

var _ Manager = (*AccountManager)(nil)

// NewAccount is a customer to be created with a password and starting roles.
type NewAccount struct {
	Customer *customer.Customer
	Password string
	Roles    []string
}

type AccountManager struct {
	customers customer.CustomerRepository
	roles     role.Repository
	cost      int
	logger    *slog.Logger
}

func NewAccountManager(customers customer.CustomerRepository, roles role.Repository, logger *slog.Logger) *AccountManager {
	return NewAccountManagerWithCost(customers, roles, bcrypt.DefaultCost, logger)
}

func NewAccountManagerWithCost(customers customer.CustomerRepository, roles role.Repository, cost int, logger *slog.Logger) *AccountManager {
	if customers == nil || roles == nil {
		panic("account manager repositories cannot be nil")
	}
	return &AccountManager{
		customers: customers,
		roles:     roles,
		cost:      cost,
		logger:    logger.With(slog.String("component", "AccountManager")),
	}
}

func (m *AccountManager) CreateAccount(ctx context.Context, cust *customer.Customer, password string) error {
	if err := m.prepare(cust, password); err != nil {
		return err
	}

	if err := m.customers.Add(ctx, cust); err != nil {
		m.logger.ErrorContext(ctx, "Failed to create account", slog.String("email", *cust.Email), slog.Any("error", err))
		return fmt.Errorf("failed to create account for %s: %w", *cust.Email, err)
	}

	m.logger.InfoContext(ctx, "Account created", slog.Int64("customerID", cust.CustomerID))
	return nil
}

// CreateAccounts creates every account with its roles in a single write.
// Nothing is stored when any account is invalid or any role is unknown.
func (m *AccountManager) CreateAccounts(ctx context.Context, accounts []NewAccount) error {
	customers := make([]*customer.Customer, 0, len(accounts))
	for _, a := range accounts {
		if err := m.prepare(a.Customer, a.Password); err != nil {
			return err
		}
		a.Customer.Roles = role.NormalizeAll(a.Roles)
		customers = append(customers, a.Customer)
	}

	if err := m.customers.InsertWithRoles(ctx, customers); err != nil {
		m.logger.ErrorContext(ctx, "Failed to create accounts", slog.Int("count", len(customers)), slog.Any("error", err))
		return fmt.Errorf("failed to create %d accounts: %w", len(customers), err)
	}

	m.logger.InfoContext(ctx, "Accounts created", slog.Int("count", len(customers)))
	return nil
}

// prepare checks the credentials of cust and stores the password hash and a
// fresh security stamp on it.
func (m *AccountManager) prepare(cust *customer.Customer, password string) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cust.Email == nil || strings.TrimSpace(*cust.Email) == "" {
		return apperrors.NewValidationError("email", "an account requires an email")
	}
	if password == "" {
		return apperrors.NewValidationError("password", "an account requires a password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	cust.PasswordHash = string(hash)
	cust.SecurityStamp = customer.NewSecurityStamp()
	return nil
}

func (m *AccountManager) AddToRole(ctx context.Context, customerID int64, roleName string) error {
	r, err := m.roles.FindByNormalizedName(ctx, role.Normalize(roleName))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			m.logger.WarnContext(ctx, "Unknown role", slog.String("role", roleName))
			return fmt.Errorf("role %q: %w", roleName, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to resolve role %q: %w", roleName, err)
	}

	if err := m.roles.AssignToCustomer(ctx, customerID, r.ID); err != nil {
		m.logger.ErrorContext(ctx, "Failed to assign role", slog.Int64("customerID", customerID), slog.String("role", r.NormalizedName), slog.Any("error", err))
		return fmt.Errorf("failed to assign role %q to customer %d: %w", roleName, customerID, err)
	}

	m.logger.InfoContext(ctx, "Role assigned", slog.Int64("customerID", customerID), slog.String("role", r.NormalizedName))
	return nil
}

// Authenticate returns the customer owning email when password matches its
// stored hash. Every mismatch is reported as ErrUnauthorized.
func (m *AccountManager) Authenticate(ctx context.Context, email, password string) (*customer.Customer, error) {
	cust, err := m.customers.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			m.logger.WarnContext(ctx, "Login attempt for unknown email")
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if cust.PasswordHash == "" {
		m.logger.WarnContext(ctx, "Login attempt for customer without credentials", slog.Int64("customerID", cust.CustomerID))
		return nil, apperrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(password)); err != nil {
		m.logger.WarnContext(ctx, "Login attempt with wrong password", slog.Int64("customerID", cust.CustomerID))
		return nil, apperrors.ErrUnauthorized
	}

	return cust, nil
}
