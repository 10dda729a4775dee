package customer

import (
	"context"

	"library-store/internal/domain/membership"
	"library-store/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

var _ CustomerRepository = (*MockCustomerRepository)(nil)

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Customer); ok {
		r0 = rf(ctx, customerID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	ret := _m.Called(ctx, email)

	var r0 *Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindAll(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindNewsletterSubscribers(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) Add(ctx context.Context, customer *Customer) error {
	ret := _m.Called(ctx, customer)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Customer) error); ok {
		r0 = rf(ctx, customer)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) Update(ctx context.Context, customerID int64, update CustomerUpdate) error {
	ret := _m.Called(ctx, customerID, update)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockCustomerRepository) InsertMany(ctx context.Context, customers []Customer) error {
	ret := _m.Called(ctx, customers)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) InsertWithRoles(ctx context.Context, customers []*Customer) error {
	ret := _m.Called(ctx, customers)
	return ret.Error(0)
}

type MockMembershipRepository struct {
	mock.Mock
}

var _ membership.Repository = (*MockMembershipRepository)(nil)

func (_m *MockMembershipRepository) FindAll(ctx context.Context) ([]*membership.MembershipType, error) {
	ret := _m.Called(ctx)

	var r0 []*membership.MembershipType
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*membership.MembershipType)
	}
	return r0, ret.Error(1)
}

func (_m *MockMembershipRepository) FindByID(ctx context.Context, id int64) (*membership.MembershipType, error) {
	ret := _m.Called(ctx, id)

	var r0 *membership.MembershipType
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*membership.MembershipType)
	}
	return r0, ret.Error(1)
}

func (_m *MockMembershipRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockMembershipRepository) InsertMany(ctx context.Context, types []membership.MembershipType) error {
	return _m.Called(ctx, types).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

var _ event.EventPublisher = (*MockEventPublisher)(nil)

func (_m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, e event.CustomerCreatedEvent) error {
	return _m.Called(ctx, e).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, e event.CustomerUpdatedEvent) error {
	return _m.Called(ctx, e).Error(0)
}

func (_m *MockEventPublisher) PublishNewsletterDigest(ctx context.Context, e event.NewsletterDigestEvent) error {
	return _m.Called(ctx, e).Error(0)
}
