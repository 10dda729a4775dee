package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"library-store/internal/domain/customer"
	"library-store/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customerRowColumns = []string{
	"id", "name", "email", "membership_type_id", "membership_type_name", "has_newsletter_subscribed",
	"birthdate", "password_hash", "security_stamp", "roles", "created_at", "updated_at",
}

func setupCustomerRepo(t *testing.T) (context.Context, *CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool := newMockPool(t)
	return context.Background(), NewCustomerRepository(mockPool, logger), mockPool
}

func strPtr(s string) *string { return &s }

func TestFindCustomerByIDWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	now := time.Now()
	birthdate := time.Date(1999, 7, 6, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomerByIDQuery)).WithArgs(int64(2)).WillReturnRows(
		pgxmock.NewRows(customerRowColumns).AddRow(
			int64(2), "Jan Kowalski", strPtr("jan@kowalski.pl"), int64(1), "Pay as You Go", false,
			&birthdate, "$2a$10$hash", "stamp", []string{"user"}, now, now))

	cust, err := repo.FindByID(ctx, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(2), cust.CustomerID)
	assert.Equal(t, "jan@kowalski.pl", *cust.Email)
	assert.Equal(t, "Pay as You Go", cust.MembershipTypeName)
	assert.Equal(t, birthdate, *cust.Birthdate)
	assert.Equal(t, []string{"user"}, cust.Roles)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByIDWhenNullableColumnsAreNull(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomerByIDQuery)).WithArgs(int64(5)).WillReturnRows(
		pgxmock.NewRows(customerRowColumns).AddRow(
			int64(5), "Daj kamienia", nil, int64(3), "Quaterly", true,
			nil, "", "stamp", []string{}, now, now))

	cust, err := repo.FindByID(ctx, 5)

	require.NoError(t, err)
	assert.Nil(t, cust.Email)
	assert.Nil(t, cust.Birthdate)
	assert.Empty(t, cust.PasswordHash)
	assert.Empty(t, cust.Roles)
}

func TestFindCustomerByIDWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomerByIDQuery)).WithArgs(int64(404)).WillReturnError(pgx.ErrNoRows)

	cust, err := repo.FindByID(ctx, 404)

	assert.Nil(t, cust)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByIDWhenDatabaseFails(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomerByIDQuery)).WithArgs(int64(1)).WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByID(ctx, 1)

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindCustomerByEmail(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomerByEmailQuery)).WithArgs("Adrian@Wadrzyk.pl").WillReturnRows(
		pgxmock.NewRows(customerRowColumns).AddRow(
			int64(1), "Adrian Wądrzyk", strPtr("adrian@wadrzyk.pl"), int64(1), "Pay as You Go", false,
			nil, "$2a$10$hash", "stamp", []string{"owner"}, now, now))

	cust, err := repo.FindByEmail(ctx, "Adrian@Wadrzyk.pl")

	require.NoError(t, err)
	assert.True(t, cust.HasRole("owner"))
}

func TestFindAllCustomers(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomersQuery)).WillReturnRows(
		pgxmock.NewRows(customerRowColumns).
			AddRow(int64(1), "Adrian Wądrzyk", strPtr("adrian@wadrzyk.pl"), int64(1), "Pay as You Go", false, nil, "h", "s1", []string{"owner"}, now, now).
			AddRow(int64(2), "Jan Kowalski", strPtr("jan@kowalski.pl"), int64(1), "Pay as You Go", false, nil, "h", "s2", []string{"user"}, now, now))

	customers, err := repo.FindAll(ctx)

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Jan Kowalski", customers[1].Name)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindNewsletterSubscribersWhenQueryFails(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(selectNewsletterSubscribersQuery)).WillReturnError(errors.New("timeout"))

	customers, err := repo.FindNewsletterSubscribers(ctx)

	assert.Nil(t, customers)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}

func TestAddCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	now := time.Now()
	cust := &customer.Customer{
		Name:             "Jan Kowalski",
		Email:            strPtr("jan@kowalski.pl"),
		MembershipTypeID: 1,
		PasswordHash:     "$2a$10$hash",
		SecurityStamp:    "stamp",
	}

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).WithArgs(
		cust.Name, cust.Email, cust.MembershipTypeID, cust.HasNewsletterSubscribed, cust.Birthdate, cust.PasswordHash, cust.SecurityStamp,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(2), now, now))

	err := repo.Add(ctx, cust)

	require.NoError(t, err)
	assert.Equal(t, int64(2), cust.CustomerID)
	assert.Equal(t, now, cust.CreatedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAddCustomerWhenEmailTaken(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_customers_email"})

	err := repo.Add(ctx, &customer.Customer{Name: "Jan", Email: strPtr("jan@kowalski.pl"), MembershipTypeID: 1})

	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestAddNilCustomer(t *testing.T) {
	ctx, repo, _ := setupCustomerRepo(t)
	assert.ErrorIs(t, repo.Add(ctx, nil), apperrors.ErrInvalidArgument)
}

func TestUpdateCustomerWritesOnlyTheFourFields(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	birthdate := time.Date(1999, 5, 13, 0, 0, 0, 0, time.UTC)
	update := customer.CustomerUpdate{Name: "Ksiądz Robak", Birthdate: &birthdate, MembershipTypeID: 2, HasNewsletterSubscribed: true}

	mockPool.ExpectExec(regexp.QuoteMeta(updateCustomerQuery)).
		WithArgs(update.Name, update.Birthdate, update.MembershipTypeID, update.HasNewsletterSubscribed, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(ctx, 3, update)

	assert.NoError(t, err)
	assert.NotContains(t, updateCustomerQuery, "email")
	assert.NotContains(t, updateCustomerQuery, "password_hash")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateCustomerWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	mockPool.ExpectExec(regexp.QuoteMeta(updateCustomerQuery)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(ctx, 404, customer.CustomerUpdate{Name: "Ghost", MembershipTypeID: 1})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateCustomerWithUnknownMembershipType(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	mockPool.ExpectExec(regexp.QuoteMeta(updateCustomerQuery)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), int64(9), pgxmock.AnyArg(), int64(1)).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

	err := repo.Update(ctx, 1, customer.CustomerUpdate{Name: "Adrian", MembershipTypeID: 9})

	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestInsertManyCustomers(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	now := time.Now()
	customers := []customer.Customer{
		{Name: "Jan Kowalski", MembershipTypeID: 1, SecurityStamp: "s1"},
		{Name: "Ksiądz Robak", MembershipTypeID: 2, HasNewsletterSubscribed: true, SecurityStamp: "s2"},
	}

	mockPool.ExpectBegin()
	for i, c := range customers {
		mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).
			WithArgs(c.Name, c.Email, c.MembershipTypeID, c.HasNewsletterSubscribed, c.Birthdate, c.PasswordHash, c.SecurityStamp).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(i+1), now, now))
	}
	mockPool.ExpectCommit()

	err := repo.InsertMany(ctx, customers)

	require.NoError(t, err)
	assert.Equal(t, int64(1), customers[0].CustomerID)
	assert.Equal(t, int64(2), customers[1].CustomerID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestInsertManyCustomersWithUnknownMembershipType(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "customers_membership_type_id_fkey"})
	mockPool.ExpectRollback()

	err := repo.InsertMany(ctx, []customer.Customer{{Name: "Jan Kowalski", MembershipTypeID: 1}})

	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestInsertCustomersWithRoles(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	now := time.Now()
	customers := []*customer.Customer{
		{Name: "Adrian Wądrzyk", Email: strPtr("adrian@wadrzyk.pl"), MembershipTypeID: 1, PasswordHash: "h1", SecurityStamp: "s1", Roles: []string{"owner"}},
		{Name: "Jan Kowalski", Email: strPtr("jan@kowalski.pl"), MembershipTypeID: 1, PasswordHash: "h2", SecurityStamp: "s2", Roles: []string{"user"}},
	}

	mockPool.ExpectBegin()
	for i, c := range customers {
		mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).
			WithArgs(c.Name, c.Email, c.MembershipTypeID, c.HasNewsletterSubscribed, c.Birthdate, c.PasswordHash, c.SecurityStamp).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(i+1), now, now))
		mockPool.ExpectExec(regexp.QuoteMeta(grantCustomerRoleQuery)).
			WithArgs(int64(i+1), c.Roles[0]).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mockPool.ExpectCommit()

	err := repo.InsertWithRoles(ctx, customers)

	require.NoError(t, err)
	assert.Equal(t, int64(1), customers[0].CustomerID)
	assert.Equal(t, int64(2), customers[1].CustomerID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestInsertCustomersWithRolesRollsBackOnUnknownRole(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	now := time.Now()
	customers := []*customer.Customer{
		{Name: "Adrian Wądrzyk", Email: strPtr("adrian@wadrzyk.pl"), MembershipTypeID: 1, SecurityStamp: "s1", Roles: []string{"owner"}},
		{Name: "Jan Kowalski", Email: strPtr("jan@kowalski.pl"), MembershipTypeID: 1, SecurityStamp: "s2", Roles: []string{"user"}},
	}

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))
	mockPool.ExpectExec(regexp.QuoteMeta(grantCustomerRoleQuery)).
		WithArgs(int64(1), "owner").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(2), now, now))
	mockPool.ExpectExec(regexp.QuoteMeta(grantCustomerRoleQuery)).
		WithArgs(int64(2), "user").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mockPool.ExpectRollback()

	err := repo.InsertWithRoles(ctx, customers)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), `role "user"`)
	assert.Zero(t, customers[0].CustomerID, "ids from a rolled back transaction are cleared")
	assert.Zero(t, customers[1].CustomerID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
