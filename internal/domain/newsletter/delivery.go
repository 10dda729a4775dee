package newsletter

import (
	"context"
	"time"
)

// Delivery records that a subscriber's digest for a given day reached the
// notifier. At most one delivery exists per customer and digest date.
type Delivery struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	Email      string    `json:"email"`
	BookCount  int       `json:"bookCount"`
	DigestDate time.Time `json:"digestDate"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// DigestDay truncates t to the UTC calendar day used to deduplicate digests.
func DigestDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type DeliveryRepository interface {
	// Record stores d and reports false when a delivery for the same
	// customer and digest date already exists.
	Record(ctx context.Context, d *Delivery) (bool, error)
}
