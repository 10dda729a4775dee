package seed

import (
	"time"

	"library-store/internal/domain/catalog"
	"library-store/internal/domain/customer"
	"library-store/internal/domain/membership"
	"library-store/internal/domain/role"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func MembershipTypes() []membership.MembershipType {
	return []membership.MembershipType{
		{ID: membership.PayAsYouGo, Name: "Pay as You Go", SignUpFee: decimal.Zero, DurationInMonths: 0, DiscountRate: decimal.Zero},
		{ID: membership.Monthly, Name: "Monthly", SignUpFee: decimal.NewFromInt(30), DurationInMonths: 1, DiscountRate: decimal.NewFromInt(10)},
		{ID: membership.Quarterly, Name: "Quaterly", SignUpFee: decimal.NewFromInt(90), DurationInMonths: 3, DiscountRate: decimal.NewFromInt(15)},
		{ID: membership.Yearly, Name: "Yearly", SignUpFee: decimal.NewFromInt(300), DurationInMonths: 12, DiscountRate: decimal.NewFromInt(20)},
	}
}

func Genres() []catalog.Genre {
	return []catalog.Genre{
		{ID: 1, Name: "Romance"},
		{ID: 2, Name: "Fantasy"},
		{ID: 3, Name: "Sci-Fi"},
		{ID: 4, Name: "Criminal"},
		{ID: 5, Name: "Biography"},
		{ID: 6, Name: "Horror"},
	}
}

// Books returns the book fixtures stamped with added as their DateAdded.
func Books(added time.Time) []catalog.Book {
	return []catalog.Book{
		{GenreID: 1, Name: "Fault in our stars", AuthorName: "John Green", ReleaseDate: day(2012, time.January, 10), DateAdded: added, NumberInStock: 10},
		{GenreID: 2, Name: "The fellowship of the Ring", AuthorName: "J.R.R. Tolkien", ReleaseDate: day(1954, time.July, 29), DateAdded: added, NumberInStock: 99},
		{GenreID: 3, Name: "Dune", AuthorName: "Frank Herbert", ReleaseDate: day(1965, time.August, 1), DateAdded: added, NumberInStock: 3},
	}
}

func Roles() []role.Role {
	return []role.Role{role.New(role.User), role.New(role.StoreManager), role.New(role.Owner)}
}

type Account struct {
	Name  string
	Email string
	Role  string
}

func Accounts() []Account {
	return []Account{
		{Name: "Adrian Wądrzyk", Email: "adrian@wadrzyk.pl", Role: role.Normalize(role.Owner)},
		{Name: "Jan Kowalski", Email: "jan@kowalski.pl", Role: role.Normalize(role.User)},
		{Name: "Ksiadz Robak", Email: "ksiadz@robak.pl", Role: role.Normalize(role.StoreManager)},
	}
}

func DemographicCustomers() []customer.Customer {
	return []customer.Customer{
		{Name: "Jan Kowalski", HasNewsletterSubscribed: false, MembershipTypeID: membership.PayAsYouGo, Birthdate: datePtr(day(1999, time.July, 6)), SecurityStamp: customer.NewSecurityStamp()},
		{Name: "Ksiądz Robak", HasNewsletterSubscribed: true, MembershipTypeID: membership.Monthly, Birthdate: datePtr(day(1999, time.May, 13)), SecurityStamp: customer.NewSecurityStamp()},
		{Name: "Daj kamienia", HasNewsletterSubscribed: true, MembershipTypeID: membership.Quarterly, Birthdate: datePtr(day(2001, time.July, 22)), SecurityStamp: customer.NewSecurityStamp()},
	}
}

func datePtr(t time.Time) *time.Time {
	return &t
}
