package postgres

import (
	"context"
	"errors"
	"log/slog"

	"library-store/internal/domain/role"
	"library-store/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	selectRoleByNormalizedNameQuery = `
        SELECT id, name, normalized_name
        FROM roles
        WHERE normalized_name = $1`

	insertRoleQuery = `INSERT INTO roles (id, name, normalized_name) VALUES ($1, $2, $3)`

	insertCustomerRoleQuery = `
        INSERT INTO customer_roles (customer_id, role_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`
)

type RoleRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ role.Repository = (*RoleRepository)(nil)

func NewRoleRepository(db DBPool, logger *slog.Logger) *RoleRepository {
	if db == nil {
		panic("DBPool cannot be nil for RoleRepository")
	}
	return &RoleRepository{db: db, logger: logger.With("component", "RoleRepository")}
}

func (r *RoleRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.logger, "roles")
}

func (r *RoleRepository) InsertMany(ctx context.Context, roles []role.Role) error {
	return withTx(ctx, r.db, r.logger, func(tx pgx.Tx) error {
		for _, ro := range roles {
			if _, err := tx.Exec(ctx, insertRoleQuery, ro.ID, ro.Name, ro.NormalizedName); err != nil {
				r.logger.ErrorContext(ctx, "Failed to insert role", slog.String("role", ro.Name), slog.Any("error", err))
				return translateDBError(err, r.logger)
			}
		}
		return nil
	})
}

func (r *RoleRepository) FindByNormalizedName(ctx context.Context, normalizedName string) (*role.Role, error) {
	var ro role.Role
	err := r.db.QueryRow(ctx, selectRoleByNormalizedNameQuery, normalizedName).Scan(&ro.ID, &ro.Name, &ro.NormalizedName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find role", slog.String("role", normalizedName), slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to find role")
	}
	return &ro, nil
}

func (r *RoleRepository) AssignToCustomer(ctx context.Context, customerID int64, roleID string) error {
	_, err := r.db.Exec(ctx, insertCustomerRoleQuery, customerID, roleID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to assign role", slog.Int64("customerID", customerID), slog.String("roleID", roleID), slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	return nil
}
