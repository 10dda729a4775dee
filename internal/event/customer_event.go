package event

import "time"

type CustomerEventPayload struct {
	CustomerID              int64      `json:"customerId"`
	Name                    string     `json:"name"`
	Email                   *string    `json:"email,omitempty"`
	MembershipTypeID        int64      `json:"membershipTypeId"`
	HasNewsletterSubscribed bool       `json:"hasNewsletterSubscribed"`
	Birthdate               *time.Time `json:"birthdate,omitempty"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}
