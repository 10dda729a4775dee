package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"library-store/internal/domain/customer"
	"library-store/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	customerColumns = `
            c.id, c.name, c.email, c.membership_type_id, m.name, c.has_newsletter_subscribed,
            c.birthdate, COALESCE(c.password_hash, ''), c.security_stamp,
            ARRAY(
                SELECT r.normalized_name
                FROM customer_roles cr
                JOIN roles r ON r.id = cr.role_id
                WHERE cr.customer_id = c.id
                ORDER BY r.normalized_name
            ),
            c.created_at, c.updated_at`

	customerFrom = `
        FROM customers c
        JOIN membership_types m ON m.id = c.membership_type_id`

	selectCustomerByIDQuery = `SELECT` + customerColumns + customerFrom + `
        WHERE c.id = $1`

	selectCustomerByEmailQuery = `SELECT` + customerColumns + customerFrom + `
        WHERE LOWER(c.email) = LOWER($1)`

	selectCustomersQuery = `SELECT` + customerColumns + customerFrom + `
        ORDER BY c.id`

	selectNewsletterSubscribersQuery = `SELECT` + customerColumns + customerFrom + `
        WHERE c.has_newsletter_subscribed = TRUE
        ORDER BY c.id`

	insertCustomerQuery = `
        INSERT INTO customers (name, email, membership_type_id, has_newsletter_subscribed, birthdate, password_hash, security_stamp, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	grantCustomerRoleQuery = `
        INSERT INTO customer_roles (customer_id, role_id)
        SELECT $1, id FROM roles WHERE normalized_name = $2`

	updateCustomerQuery = `
        UPDATE customers
        SET name = $1,
            birthdate = $2,
            membership_type_id = $3,
            has_newsletter_subscribed = $4,
            updated_at = NOW()
        WHERE id = $5`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func scanCustomer(row rowScanner) (*customer.Customer, error) {
	var cust customer.Customer
	err := row.Scan(
		&cust.CustomerID,
		&cust.Name,
		&cust.Email,
		&cust.MembershipTypeID,
		&cust.MembershipTypeName,
		&cust.HasNewsletterSubscribed,
		&cust.Birthdate,
		&cust.PasswordHash,
		&cust.SecurityStamp,
		&cust.Roles,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func (r *CustomerRepository) findOne(ctx context.Context, queryName, query string, arg any) (*customer.Customer, error) {
	start := time.Now()
	cust, err := scanCustomer(r.db.QueryRow(ctx, query, arg))
	observe(queryName, start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found", slog.String("query", queryName))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find customer", slog.String("query", queryName), slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to find customer")
	}
	return cust, nil
}

func (r *CustomerRepository) findMany(ctx context.Context, queryName, query string) ([]*customer.Customer, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		observe(queryName, start, err)
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.String("query", queryName), slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to query customers")
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			observe(queryName, start, err)
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, apperrors.WrapDatabaseError(err, "failed to scan customer")
		}
		customers = append(customers, cust)
	}
	err = rows.Err()
	observe(queryName, start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "error iterating customers")
	}

	r.logger.DebugContext(ctx, "Found customers", slog.String("query", queryName), slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	return r.findOne(ctx, "FindCustomerByID", selectCustomerByIDQuery, customerID)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.findOne(ctx, "FindCustomerByEmail", selectCustomerByEmailQuery, email)
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	return r.findMany(ctx, "FindAllCustomers", selectCustomersQuery)
}

func (r *CustomerRepository) FindNewsletterSubscribers(ctx context.Context) ([]*customer.Customer, error) {
	return r.findMany(ctx, "FindNewsletterSubscribers", selectNewsletterSubscribersQuery)
}

func (r *CustomerRepository) Add(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	start := time.Now()
	err := r.db.QueryRow(ctx, insertCustomerQuery,
		cust.Name,
		cust.Email,
		cust.MembershipTypeID,
		cust.HasNewsletterSubscribed,
		cust.Birthdate,
		cust.PasswordHash,
		cust.SecurityStamp,
	).Scan(
		&cust.CustomerID,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	observe("AddCustomer", start, err)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrDatabase) {
			r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		}
		return translatedErr
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.CustomerID))
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, customerID int64, update customer.CustomerUpdate) error {
	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, updateCustomerQuery,
		update.Name,
		update.Birthdate,
		update.MembershipTypeID,
		update.HasNewsletterSubscribed,
		customerID,
	)
	observe("UpdateCustomer", start, err)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrDatabase) {
			r.logger.ErrorContext(ctx, "Failed to update customer", slog.Int64("customerID", customerID), slog.Any("error", err))
		}
		return translatedErr
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found", slog.Int64("customerID", customerID))
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer updated successfully", slog.Int64("customerID", customerID))
	return nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.logger, "customers")
}

func (r *CustomerRepository) InsertMany(ctx context.Context, customers []customer.Customer) error {
	return withTx(ctx, r.db, r.logger, func(tx pgx.Tx) error {
		for i := range customers {
			c := &customers[i]
			err := tx.QueryRow(ctx, insertCustomerQuery,
				c.Name,
				c.Email,
				c.MembershipTypeID,
				c.HasNewsletterSubscribed,
				c.Birthdate,
				c.PasswordHash,
				c.SecurityStamp,
			).Scan(&c.CustomerID, &c.CreatedAt, &c.UpdatedAt)
			if err != nil {
				r.logger.ErrorContext(ctx, "Failed to insert customer", slog.String("name", c.Name), slog.Any("error", err))
				return translateDBError(err, r.logger)
			}
		}
		return nil
	})
}

func (r *CustomerRepository) InsertWithRoles(ctx context.Context, customers []*customer.Customer) error {
	start := time.Now()
	err := withTx(ctx, r.db, r.logger, func(tx pgx.Tx) error {
		for _, c := range customers {
			err := tx.QueryRow(ctx, insertCustomerQuery,
				c.Name,
				c.Email,
				c.MembershipTypeID,
				c.HasNewsletterSubscribed,
				c.Birthdate,
				c.PasswordHash,
				c.SecurityStamp,
			).Scan(&c.CustomerID, &c.CreatedAt, &c.UpdatedAt)
			if err != nil {
				r.logger.ErrorContext(ctx, "Failed to insert customer", slog.String("name", c.Name), slog.Any("error", err))
				return translateDBError(err, r.logger)
			}

			for _, roleName := range c.Roles {
				cmdTag, err := tx.Exec(ctx, grantCustomerRoleQuery, c.CustomerID, roleName)
				if err != nil {
					r.logger.ErrorContext(ctx, "Failed to grant role", slog.Int64("customerID", c.CustomerID), slog.String("role", roleName), slog.Any("error", err))
					return translateDBError(err, r.logger)
				}
				if cmdTag.RowsAffected() == 0 {
					r.logger.WarnContext(ctx, "Unknown role", slog.String("role", roleName))
					return fmt.Errorf("role %q: %w", roleName, apperrors.ErrNotFound)
				}
			}
		}
		return nil
	})
	observe("InsertCustomersWithRoles", start, err)
	if err != nil {
		for _, c := range customers {
			c.CustomerID = 0
		}
		return err
	}

	r.logger.InfoContext(ctx, "Customers inserted with roles", slog.Int("count", len(customers)))
	return nil
}
