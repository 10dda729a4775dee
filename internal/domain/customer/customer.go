package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	CustomerID              int64      `json:"customerId"`
	Name                    string     `json:"name"`
	Email                   *string    `json:"email,omitempty"`
	MembershipTypeID        int64      `json:"membershipTypeId"`
	MembershipTypeName      string     `json:"membershipTypeName,omitempty"`
	HasNewsletterSubscribed bool       `json:"hasNewsletterSubscribed"`
	Birthdate               *time.Time `json:"birthdate,omitempty"`
	PasswordHash            string     `json:"-"`
	SecurityStamp           string     `json:"-"`
	Roles                   []string   `json:"roles,omitempty"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

// CustomerUpdate carries the fields a save of an existing customer may change.
// Email, roles and credentials are never part of it.
type CustomerUpdate struct {
	Name                    string
	Birthdate               *time.Time
	MembershipTypeID        int64
	HasNewsletterSubscribed bool
}

func NewCustomer(name string, email *string, membershipTypeID int64, newsletter bool, birthdate *time.Time) *Customer {
	now := time.Now()
	return &Customer{
		Name:                    name,
		Email:                   email,
		MembershipTypeID:        membershipTypeID,
		HasNewsletterSubscribed: newsletter,
		Birthdate:               birthdate,
		SecurityStamp:           NewSecurityStamp(),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

func NewSecurityStamp() string {
	return uuid.NewString()
}

func (c *Customer) IsNew() bool {
	return c.CustomerID == 0
}

// Changes extracts the updatable fields of c.
func (c *Customer) Changes() CustomerUpdate {
	return CustomerUpdate{
		Name:                    c.Name,
		Birthdate:               c.Birthdate,
		MembershipTypeID:        c.MembershipTypeID,
		HasNewsletterSubscribed: c.HasNewsletterSubscribed,
	}
}

func (c *Customer) Apply(u CustomerUpdate) {
	c.Name = u.Name
	c.Birthdate = u.Birthdate
	c.MembershipTypeID = u.MembershipTypeID
	c.HasNewsletterSubscribed = u.HasNewsletterSubscribed
	c.UpdatedAt = time.Now()
}

func (c *Customer) HasRole(normalizedName string) bool {
	for _, r := range c.Roles {
		if r == normalizedName {
			return true
		}
	}
	return false
}

// AgeOn returns the customer's age in whole years at t, and false when the
// birthdate is unknown.
func AgeOn(birthdate *time.Time, t time.Time) (int, bool) {
	if birthdate == nil {
		return 0, false
	}
	years := t.Year() - birthdate.Year()
	if t.Month() < birthdate.Month() || (t.Month() == birthdate.Month() && t.Day() < birthdate.Day()) {
		years--
	}
	return years, true
}
