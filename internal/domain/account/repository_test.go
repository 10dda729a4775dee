package account

import (
	"context"

	"library-store/internal/domain/customer"
	"library-store/internal/domain/role"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

var _ customer.CustomerRepository = (*MockCustomerRepository)(nil)

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	ret := _m.Called(ctx, email)
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	ret := _m.Called(ctx)
	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindNewsletterSubscribers(ctx context.Context) ([]*customer.Customer, error) {
	ret := _m.Called(ctx)
	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) Add(ctx context.Context, cust *customer.Customer) error {
	ret := _m.Called(ctx, cust)
	if rf, ok := ret.Get(0).(func(context.Context, *customer.Customer) error); ok {
		return rf(ctx, cust)
	}
	return ret.Error(0)
}

func (_m *MockCustomerRepository) Update(ctx context.Context, customerID int64, update customer.CustomerUpdate) error {
	return _m.Called(ctx, customerID, update).Error(0)
}

func (_m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockCustomerRepository) InsertMany(ctx context.Context, customers []customer.Customer) error {
	return _m.Called(ctx, customers).Error(0)
}

func (_m *MockCustomerRepository) InsertWithRoles(ctx context.Context, customers []*customer.Customer) error {
	ret := _m.Called(ctx, customers)
	if rf, ok := ret.Get(0).(func(context.Context, []*customer.Customer) error); ok {
		return rf(ctx, customers)
	}
	return ret.Error(0)
}

type MockRoleRepository struct {
	mock.Mock
}

var _ role.Repository = (*MockRoleRepository)(nil)

func (_m *MockRoleRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockRoleRepository) InsertMany(ctx context.Context, roles []role.Role) error {
	return _m.Called(ctx, roles).Error(0)
}

func (_m *MockRoleRepository) FindByNormalizedName(ctx context.Context, normalizedName string) (*role.Role, error) {
	ret := _m.Called(ctx, normalizedName)
	var r0 *role.Role
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*role.Role)
	}
	return r0, ret.Error(1)
}

func (_m *MockRoleRepository) AssignToCustomer(ctx context.Context, customerID int64, roleID string) error {
	return _m.Called(ctx, customerID, roleID).Error(0)
}
