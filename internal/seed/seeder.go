package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"library-store/internal/config"
	"library-store/internal/domain/account"
	"library-store/internal/domain/catalog"
	"library-store/internal/domain/customer"
	"library-store/internal/domain/membership"
	"library-store/internal/domain/role"
	"library-store/internal/infrastructure/monitoring"
	"library-store/internal/pkg/apperrors"
)

const (
	CollectionMembershipTypes = "membership_types"
	CollectionGenres          = "genres"
	CollectionBooks           = "books"
	CollectionRoles           = "roles"
	CollectionCustomers       = "customers"
)

type CollectionResult struct {
	Collection string `json:"collection"`
	Seeded     bool   `json:"seeded"`
	Inserted   int    `json:"inserted"`
}

type Result struct {
	Collections []CollectionResult `json:"collections"`
}

func (r Result) Inserted() int {
	total := 0
	for _, c := range r.Collections {
		total += c.Inserted
	}
	return total
}

type Repositories struct {
	Memberships membership.Repository
	Genres      catalog.GenreRepository
	Books       catalog.BookRepository
	Roles       role.Repository
	Customers   customer.CustomerRepository
}

// Seeder fills empty collections with fixture data. Collections are visited in
// dependency order so every foreign key resolves.
type Seeder struct {
	repos    Repositories
	accounts account.Manager
	cfg      config.SeedConfig
	now      func() time.Time
	logger   *slog.Logger
}

func NewSeeder(repos Repositories, accounts account.Manager, cfg config.SeedConfig, logger *slog.Logger) *Seeder {
	if cfg.Profile == "" {
		cfg.Profile = config.SeedProfileAccounts
	}
	return &Seeder{
		repos:    repos,
		accounts: accounts,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger.With("component", "Seeder"),
	}
}

type step struct {
	collection string
	count      func(ctx context.Context) (int64, error)
	insert     func(ctx context.Context) (int, error)
}

func (s *Seeder) steps() []step {
	return []step{
		{CollectionMembershipTypes, s.repos.Memberships.Count, s.seedMembershipTypes},
		{CollectionGenres, s.repos.Genres.Count, s.seedGenres},
		{CollectionBooks, s.repos.Books.Count, s.seedBooks},
		{CollectionRoles, s.repos.Roles.Count, s.seedRoles},
		{CollectionCustomers, s.repos.Customers.Count, s.seedCustomers},
	}
}

func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var result Result
	if err := s.cfg.Validate(); err != nil {
		return result, fmt.Errorf("%w: %w: %w", apperrors.ErrSeedFailed, apperrors.ErrInvalidArgument, err)
	}
	for _, st := range s.steps() {
		n, err := st.count(ctx)
		if err != nil {
			return result, fmt.Errorf("%w: %s: %w", apperrors.ErrSeedFailed, st.collection, err)
		}
		if n > 0 {
			s.logger.InfoContext(ctx, "Database already seeded", slog.String("collection", st.collection), slog.Int64("rows", n))
			result.Collections = append(result.Collections, CollectionResult{Collection: st.collection})
			continue
		}

		inserted, err := st.insert(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "Seeding failed", slog.String("collection", st.collection), slog.Any("error", err))
			return result, fmt.Errorf("%w: %s: %w", apperrors.ErrSeedFailed, st.collection, err)
		}
		monitoring.RecordSeededRows(st.collection, inserted)
		s.logger.InfoContext(ctx, "Seeded collection", slog.String("collection", st.collection), slog.Int("rows", inserted))
		result.Collections = append(result.Collections, CollectionResult{Collection: st.collection, Seeded: true, Inserted: inserted})
	}
	return result, nil
}

func (s *Seeder) seedMembershipTypes(ctx context.Context) (int, error) {
	types := MembershipTypes()
	return len(types), s.repos.Memberships.InsertMany(ctx, types)
}

func (s *Seeder) seedGenres(ctx context.Context) (int, error) {
	genres := Genres()
	return len(genres), s.repos.Genres.InsertMany(ctx, genres)
}

func (s *Seeder) seedBooks(ctx context.Context) (int, error) {
	books := Books(s.now())
	return len(books), s.repos.Books.InsertMany(ctx, books)
}

func (s *Seeder) seedRoles(ctx context.Context) (int, error) {
	roles := Roles()
	return len(roles), s.repos.Roles.InsertMany(ctx, roles)
}

func (s *Seeder) seedCustomers(ctx context.Context) (int, error) {
	switch s.cfg.Profile {
	case config.SeedProfileAccounts:
		return s.seedAccounts(ctx)
	case config.SeedProfileDemographic:
		customers := DemographicCustomers()
		return len(customers), s.repos.Customers.InsertMany(ctx, customers)
	default:
		return 0, fmt.Errorf("%w: unknown seed profile %q", apperrors.ErrInvalidArgument, s.cfg.Profile)
	}
}

func (s *Seeder) seedAccounts(ctx context.Context) (int, error) {
	if s.accounts == nil {
		return 0, fmt.Errorf("%w: account manager is required for the %s profile", apperrors.ErrInvalidArgument, config.SeedProfileAccounts)
	}
	fixtures := Accounts()
	accounts := make([]account.NewAccount, 0, len(fixtures))
	for _, a := range fixtures {
		email := a.Email
		accounts = append(accounts, account.NewAccount{
			Customer: customer.NewCustomer(a.Name, &email, membership.PayAsYouGo, false, nil),
			Password: s.cfg.DefaultPassword,
			Roles:    []string{a.Role},
		})
	}
	if err := s.accounts.CreateAccounts(ctx, accounts); err != nil {
		return 0, err
	}
	return len(accounts), nil
}
