package event

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRabbitMQEventPublisher_InvalidArguments(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pub, err := NewRabbitMQEventPublisher(nil, "library-store", logger)
	assert.Nil(t, pub)
	assert.EqualError(t, err, "RabbitMQ connection cannot be nil")
}

func TestEncode_CustomerEvent(t *testing.T) {
	email := "jan@kowalski.pl"
	birthdate := time.Date(1999, 7, 6, 0, 0, 0, 0, time.UTC)
	body, err := encode(CustomerUpdatedEvent{
		Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Payload: CustomerEventPayload{
			CustomerID:              2,
			Name:                    "Jan Kowalski",
			Email:                   &email,
			MembershipTypeID:        1,
			HasNewsletterSubscribed: true,
			Birthdate:               &birthdate,
		},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, float64(2), payload["customerId"])
	assert.Equal(t, "jan@kowalski.pl", payload["email"])
	assert.Equal(t, true, payload["hasNewsletterSubscribed"])
	assert.Equal(t, "1999-07-06T00:00:00Z", payload["birthdate"])
}

func TestEncode_OmitsNilOptionalFields(t *testing.T) {
	body, err := encode(CustomerCreatedEvent{Payload: CustomerEventPayload{CustomerID: 7, Name: "Daj kamienia"}})
	require.NoError(t, err)

	assert.NotContains(t, string(body), "email")
	assert.NotContains(t, string(body), "birthdate")
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := encode(make(chan int))
	assert.ErrorContains(t, err, "failed to marshal event")
}
