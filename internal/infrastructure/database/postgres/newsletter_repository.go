package postgres

import (
	"context"
	"log/slog"
	"time"

	"library-store/internal/domain/newsletter"
)

const insertNewsletterDeliveryQuery = `
        INSERT INTO newsletter_deliveries (customer_id, email, book_count, digest_date, received_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (customer_id, digest_date) DO NOTHING`

type NewsletterDeliveryRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ newsletter.DeliveryRepository = (*NewsletterDeliveryRepository)(nil)

func NewNewsletterDeliveryRepository(db DBPool, logger *slog.Logger) *NewsletterDeliveryRepository {
	if db == nil {
		panic("DBPool cannot be nil for NewsletterDeliveryRepository")
	}
	return &NewsletterDeliveryRepository{db: db, logger: logger.With("component", "NewsletterDeliveryRepository")}
}

func (r *NewsletterDeliveryRepository) Record(ctx context.Context, d *newsletter.Delivery) (bool, error) {
	logCtx := r.logger.With(slog.Int64("customerID", d.CustomerID))
	logCtx.DebugContext(ctx, "Recording newsletter delivery")

	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, insertNewsletterDeliveryQuery,
		d.CustomerID,
		d.Email,
		d.BookCount,
		d.DigestDate,
		d.ReceivedAt,
	)
	observe("RecordNewsletterDelivery", start, err)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to record newsletter delivery", slog.Any("error", err))
		return false, translateDBError(err, logCtx)
	}

	inserted := cmdTag.RowsAffected() == 1
	logCtx.InfoContext(ctx, "Newsletter delivery recorded", slog.Bool("inserted", inserted))
	return inserted, nil
}
