package event

import "time"

type NewsletterBook struct {
	BookID        int64     `json:"bookId"`
	Name          string    `json:"name"`
	AuthorName    string    `json:"authorName"`
	ReleaseDate   time.Time `json:"releaseDate"`
	NumberInStock int       `json:"numberInStock"`
}

// NewsletterDigestEvent is sent once per subscribed customer.
type NewsletterDigestEvent struct {
	Timestamp  time.Time        `json:"timestamp"`
	CustomerID int64            `json:"customerId"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Books      []NewsletterBook `json:"books"`
}
