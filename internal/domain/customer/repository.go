package customer

import (
	"context"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByEmail(ctx context.Context, email string) (*Customer, error)

	FindAll(ctx context.Context) ([]*Customer, error)

	FindNewsletterSubscribers(ctx context.Context) ([]*Customer, error)

	Add(ctx context.Context, customer *Customer) error

	Update(ctx context.Context, customerID int64, update CustomerUpdate) error

	Count(ctx context.Context) (int64, error)

	InsertMany(ctx context.Context, customers []Customer) error

	// InsertWithRoles adds every customer and grants it the normalized role
	// names in Roles. Either all rows are written or none are.
	InsertWithRoles(ctx context.Context, customers []*Customer) error
}
