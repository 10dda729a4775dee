package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"library-store/internal/domain/membership"
	"library-store/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	selectMembershipTypesQuery = `
        SELECT id, name, sign_up_fee, duration_in_months, discount_rate
        FROM membership_types
        ORDER BY id`

	selectMembershipTypeByIDQuery = `
        SELECT id, name, sign_up_fee, duration_in_months, discount_rate
        FROM membership_types
        WHERE id = $1`

	insertMembershipTypeQuery = `
        INSERT INTO membership_types (id, name, sign_up_fee, duration_in_months, discount_rate)
        VALUES ($1, $2, $3, $4, $5)`
)

type MembershipRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ membership.Repository = (*MembershipRepository)(nil)

func NewMembershipRepository(db DBPool, logger *slog.Logger) *MembershipRepository {
	if db == nil {
		panic("DBPool cannot be nil for MembershipRepository")
	}
	return &MembershipRepository{db: db, logger: logger.With("component", "MembershipRepository")}
}

func scanMembershipType(row rowScanner) (*membership.MembershipType, error) {
	var mt membership.MembershipType
	err := row.Scan(&mt.ID, &mt.Name, &mt.SignUpFee, &mt.DurationInMonths, &mt.DiscountRate)
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

func (r *MembershipRepository) FindAll(ctx context.Context) ([]*membership.MembershipType, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, selectMembershipTypesQuery)
	if err != nil {
		observe("FindAllMembershipTypes", start, err)
		r.logger.ErrorContext(ctx, "Failed to query membership types", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to query membership types")
	}
	defer rows.Close()

	types := make([]*membership.MembershipType, 0)
	for rows.Next() {
		mt, err := scanMembershipType(rows)
		if err != nil {
			observe("FindAllMembershipTypes", start, err)
			r.logger.ErrorContext(ctx, "Failed to scan membership type row", slog.Any("error", err))
			return nil, apperrors.WrapDatabaseError(err, "failed to scan membership type")
		}
		types = append(types, mt)
	}
	err = rows.Err()
	observe("FindAllMembershipTypes", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error iterating membership type rows", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "error iterating membership types")
	}
	return types, nil
}

func (r *MembershipRepository) FindByID(ctx context.Context, id int64) (*membership.MembershipType, error) {
	start := time.Now()
	mt, err := scanMembershipType(r.db.QueryRow(ctx, selectMembershipTypeByIDQuery, id))
	observe("FindMembershipTypeByID", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Membership type not found", slog.Int64("membershipTypeID", id))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to find membership type", slog.Int64("membershipTypeID", id), slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to find membership type")
	}
	return mt, nil
}

func (r *MembershipRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.logger, "membership_types")
}

func (r *MembershipRepository) InsertMany(ctx context.Context, types []membership.MembershipType) error {
	return withTx(ctx, r.db, r.logger, func(tx pgx.Tx) error {
		for _, mt := range types {
			_, err := tx.Exec(ctx, insertMembershipTypeQuery, mt.ID, mt.Name, mt.SignUpFee, mt.DurationInMonths, mt.DiscountRate)
			if err != nil {
				r.logger.ErrorContext(ctx, "Failed to insert membership type", slog.Int64("membershipTypeID", mt.ID), slog.Any("error", err))
				return translateDBError(err, r.logger)
			}
		}
		return nil
	})
}
