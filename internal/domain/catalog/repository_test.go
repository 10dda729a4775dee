package catalog

import (
	"context"

	"library-store/internal/domain/membership"

	"github.com/stretchr/testify/mock"
)

type MockBookRepository struct {
	mock.Mock
}

func (_m *MockBookRepository) FindAll(ctx context.Context) ([]*Book, error) {
	ret := _m.Called(ctx)

	var r0 []*Book
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Book)
	}
	return r0, ret.Error(1)
}

func (_m *MockBookRepository) FindByID(ctx context.Context, bookID int64) (*Book, error) {
	ret := _m.Called(ctx, bookID)

	var r0 *Book
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Book)
	}
	return r0, ret.Error(1)
}

func (_m *MockBookRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockBookRepository) InsertMany(ctx context.Context, books []Book) error {
	return _m.Called(ctx, books).Error(0)
}

type MockGenreRepository struct {
	mock.Mock
}

func (_m *MockGenreRepository) FindAll(ctx context.Context) ([]*Genre, error) {
	ret := _m.Called(ctx)

	var r0 []*Genre
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Genre)
	}
	return r0, ret.Error(1)
}

func (_m *MockGenreRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockGenreRepository) InsertMany(ctx context.Context, genres []Genre) error {
	return _m.Called(ctx, genres).Error(0)
}

type MockMembershipRepository struct {
	mock.Mock
}

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
