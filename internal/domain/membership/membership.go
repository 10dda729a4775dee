package membership

import (
	"context"

	"github.com/shopspring/decimal"
)

// Reference ids of the seeded membership tiers.
const (
	Unknown    int64 = 0
	PayAsYouGo int64 = 1
	Monthly    int64 = 2
	Quarterly  int64 = 3
	Yearly     int64 = 4
)

type MembershipType struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	SignUpFee        decimal.Decimal `json:"signUpFee"`
	DurationInMonths int             `json:"durationInMonths"`
	DiscountRate     decimal.Decimal `json:"discountRate"`
}

// RequiresAdult reports whether customers on this tier must be at least 18.
func RequiresAdult(membershipTypeID int64) bool {
	return membershipTypeID != Unknown && membershipTypeID != PayAsYouGo
}

type Repository interface {
	FindAll(ctx context.Context) ([]*MembershipType, error)

	FindByID(ctx context.Context, id int64) (*MembershipType, error)

	Count(ctx context.Context) (int64, error)

	InsertMany(ctx context.Context, types []MembershipType) error
}
