package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"library-store/internal/domain/newsletter"
	"library-store/internal/event"
	"library-store/internal/infrastructure/monitoring"
	"library-store/internal/pkg/apperrors"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	outcomeRecorded  = "recorded"
	outcomeDuplicate = "duplicate"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// DigestHandler records newsletter digest deliveries consumed from RabbitMQ.
type DigestHandler struct {
	repo   newsletter.DeliveryRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewDigestHandler(repo newsletter.DeliveryRepository, logger *slog.Logger) *DigestHandler {
	if repo == nil {
		panic("DeliveryRepository cannot be nil for DigestHandler")
	}
	return &DigestHandler{
		repo:   repo,
		logger: logger.With("component", "DigestHandler"),
		now:    time.Now,
	}
}

// RoutingKeys lists the keys the notifier queue must be bound to.
func (h *DigestHandler) RoutingKeys() []string {
	return []string{event.RoutingKeyNewsletterDigest}
}

func (h *DigestHandler) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	logCtx := h.logger.With(slog.Uint64("deliveryTag", d.DeliveryTag), slog.String("routingKey", d.RoutingKey))

	if d.RoutingKey != event.RoutingKeyNewsletterDigest {
		logCtx.WarnContext(ctx, "Received message with unknown routing key. Discarding.")
		h.reject(ctx, d, logCtx)
		return
	}

	var digest event.NewsletterDigestEvent
	if err := json.Unmarshal(d.Body, &digest); err != nil {
		logCtx.ErrorContext(ctx, "Failed to unmarshal NewsletterDigestEvent", "error", err, "body", string(d.Body))
		h.reject(ctx, d, logCtx)
		return
	}
	if digest.CustomerID <= 0 || digest.Email == "" {
		logCtx.WarnContext(ctx, "Newsletter digest without a recipient. Discarding.", slog.Int64("customerID", digest.CustomerID))
		h.reject(ctx, d, logCtx)
		return
	}

	logCtx = logCtx.With(slog.Int64("customerID", digest.CustomerID))
	sentAt := digest.Timestamp
	if sentAt.IsZero() {
		sentAt = h.now()
	}
	delivery := &newsletter.Delivery{
		CustomerID: digest.CustomerID,
		Email:      digest.Email,
		BookCount:  len(digest.Books),
		DigestDate: newsletter.DigestDay(sentAt),
		ReceivedAt: h.now(),
	}

	inserted, err := h.repo.Record(ctx, delivery)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			logCtx.WarnContext(ctx, "Newsletter digest for an unknown customer. Discarding.", "error", err)
			h.reject(ctx, d, logCtx)
			return
		}
		logCtx.ErrorContext(ctx, "Failed to record newsletter delivery", "error", err)
		monitoring.RecordNewsletterDelivery(outcomeFailed)
		_ = d.Nack(false, false)
		return
	}

	outcome := outcomeRecorded
	if !inserted {
		outcome = outcomeDuplicate
		logCtx.InfoContext(ctx, "Newsletter digest already delivered today")
	}
	monitoring.RecordNewsletterDelivery(outcome)

	if err := d.Ack(false); err != nil {
		logCtx.ErrorContext(ctx, "Failed to acknowledge message after successful processing", "error", err)
		return
	}
	logCtx.InfoContext(ctx, "Successfully processed and acknowledged message", slog.String("outcome", outcome))
}

func (h *DigestHandler) reject(ctx context.Context, d amqp.Delivery, logCtx *slog.Logger) {
	monitoring.RecordNewsletterDelivery(outcomeRejected)
	if err := d.Reject(false); err != nil {
		logCtx.ErrorContext(ctx, "Failed to reject message", "error", err)
	}
}
