package dto

import (
	"strings"
	"time"

	"library-store/internal/domain/customer"
)

// CustomerFormRequest is the body of POST /customers/save. A zero CustomerID
// creates a customer; any other value edits that customer.
type CustomerFormRequest struct {
	CustomerID              int64   `json:"customerId" validate:"gte=0"`
	Name                    string  `json:"name" validate:"required,max=255"`
	Email                   *string `json:"email,omitempty" validate:"omitempty,email"`
	MembershipTypeID        int64   `json:"membershipTypeId" validate:"required,gt=0"`
	HasNewsletterSubscribed bool    `json:"hasNewsletterSubscribed"`
	Birthdate               *string `json:"birthdate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CustomerFormRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		r.Email = nil
	}
	if r.Birthdate != nil && strings.TrimSpace(*r.Birthdate) == "" {
		r.Birthdate = nil
	}
	return validateStruct(r)
}

// ToCustomer converts a validated request into the domain model.
func (r *CustomerFormRequest) ToCustomer() *customer.Customer {
	var birthdate *time.Time
	if r.Birthdate != nil {
		if t, err := time.Parse(DateLayout, *r.Birthdate); err == nil {
			birthdate = &t
		}
	}
	var email *string
	if r.Email != nil {
		e := strings.TrimSpace(*r.Email)
		email = &e
	}
	return &customer.Customer{
		CustomerID:              r.CustomerID,
		Name:                    strings.TrimSpace(r.Name),
		Email:                   email,
		MembershipTypeID:        r.MembershipTypeID,
		HasNewsletterSubscribed: r.HasNewsletterSubscribed,
		Birthdate:               birthdate,
	}
}

func NewCustomerFormRequest(cust *customer.Customer) CustomerFormRequest {
	if cust == nil {
		return CustomerFormRequest{}
	}
	return CustomerFormRequest{
		CustomerID:              cust.CustomerID,
		Name:                    cust.Name,
		Email:                   cust.Email,
		MembershipTypeID:        cust.MembershipTypeID,
		HasNewsletterSubscribed: cust.HasNewsletterSubscribed,
		Birthdate:               formatDate(cust.Birthdate),
	}
}

type CustomerResponse struct {
	CustomerID              int64     `json:"customerId"`
	Name                    string    `json:"name"`
	Email                   *string   `json:"email,omitempty"`
	MembershipTypeID        int64     `json:"membershipTypeId"`
	MembershipTypeName      string    `json:"membershipTypeName,omitempty"`
	HasNewsletterSubscribed bool      `json:"hasNewsletterSubscribed"`
	Birthdate               *string   `json:"birthdate,omitempty"`
	Roles                   []string  `json:"roles,omitempty"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		CustomerID:              cust.CustomerID,
		Name:                    cust.Name,
		Email:                   cust.Email,
		MembershipTypeID:        cust.MembershipTypeID,
		MembershipTypeName:      cust.MembershipTypeName,
		HasNewsletterSubscribed: cust.HasNewsletterSubscribed,
		Birthdate:               formatDate(cust.Birthdate),
		Roles:                   cust.Roles,
		CreatedAt:               cust.CreatedAt,
		UpdatedAt:               cust.UpdatedAt,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, NewCustomerResponse(c))
	}
	return resp
}

// CustomerFormResponse backs the create and edit screens. On a rejected save
// it echoes the submitted values together with the field errors.
type CustomerFormResponse struct {
	Customer        CustomerFormRequest      `json:"customer"`
	MembershipTypes []MembershipTypeResponse `json:"membershipTypes"`
	Errors          []FieldError             `json:"errors,omitempty"`
}

func NewCustomerFormResponse(form *customer.CustomerForm) CustomerFormResponse {
	if form == nil {
		return CustomerFormResponse{MembershipTypes: []MembershipTypeResponse{}}
	}
	return CustomerFormResponse{
		Customer:        NewCustomerFormRequest(form.Customer),
		MembershipTypes: NewMembershipTypeListResponse(form.MembershipTypes),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
