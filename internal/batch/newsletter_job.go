package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"library-store/internal/domain/catalog"
	"library-store/internal/domain/customer"
	"library-store/internal/event"
	"library-store/internal/infrastructure/monitoring"
)

const (
	digestPublished = "published"
	digestFailed    = "failed"
	digestSkipped   = "skipped"
)

// NewsletterSummary counts the outcome of one digest run.
type NewsletterSummary struct {
	Subscribers int
	Published   int
	Skipped     int
	Failed      int
}

// NewsletterDigestJob publishes the in-stock catalog to every newsletter
// subscriber that has an email address.
type NewsletterDigestJob struct {
	customers customer.CustomerService
	catalog   catalog.Service
	publisher event.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewNewsletterDigestJob(
	customerSvc customer.CustomerService,
	catalogSvc catalog.Service,
	publisher event.EventPublisher,
	logger *slog.Logger,
) *NewsletterDigestJob {
	if customerSvc == nil || catalogSvc == nil || publisher == nil || logger == nil {
		panic("NewsletterDigestJob dependencies cannot be nil")
	}
	return &NewsletterDigestJob{
		customers: customerSvc,
		catalog:   catalogSvc,
		publisher: publisher,
		logger:    logger.With("job", "NewsletterDigest"),
		now:       time.Now,
	}
}

func (j *NewsletterDigestJob) Run(ctx context.Context) (NewsletterSummary, error) {
	startTime := j.now()
	j.logger.InfoContext(ctx, "Starting newsletter digest job.")

	subscribers, err := j.customers.ListNewsletterSubscribers(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list newsletter subscribers, aborting job.", slog.Any("error", err))
		return NewsletterSummary{}, fmt.Errorf("cannot run job, failed to list subscribers: %w", err)
	}
	summary := NewsletterSummary{Subscribers: len(subscribers)}
	if len(subscribers) == 0 {
		j.logger.InfoContext(ctx, "No newsletter subscribers found.")
		return summary, nil
	}

	books, err := j.catalog.ListBooks(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list books, aborting job.", slog.Any("error", err))
		return summary, fmt.Errorf("cannot run job, failed to list books: %w", err)
	}
	digestBooks := inStockBooks(books)

	var wg sync.WaitGroup
	var published, skipped, failed atomic.Int32

	for _, sub := range subscribers {
		if sub.Email == nil || *sub.Email == "" {
			j.logger.DebugContext(ctx, "Subscriber has no email, skipping.", slog.Int64("customerID", sub.CustomerID))
			monitoring.RecordNewsletterDigest(digestSkipped)
			skipped.Add(1)
			continue
		}

		wg.Add(1)
		go func(sub *customer.Customer) {
			defer wg.Done()
			logCtx := j.logger.With(slog.Int64("customerID", sub.CustomerID))

			digest := event.NewsletterDigestEvent{
				Timestamp:  j.now(),
				CustomerID: sub.CustomerID,
				Name:       sub.Name,
				Email:      *sub.Email,
				Books:      digestBooks,
			}
			if err := j.publisher.PublishNewsletterDigest(ctx, digest); err != nil {
				logCtx.ErrorContext(ctx, "Failed to publish newsletter digest", slog.Any("error", err))
				monitoring.RecordNewsletterDigest(digestFailed)
				failed.Add(1)
				return
			}
			monitoring.RecordNewsletterDigest(digestPublished)
			published.Add(1)
		}(sub)
	}
	wg.Wait()

	summary.Published = int(published.Load())
	summary.Skipped = int(skipped.Load())
	summary.Failed = int(failed.Load())

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("subscribers", summary.Subscribers),
		slog.Int("books", len(digestBooks)),
		slog.Int("published", summary.Published),
		slog.Int("skipped", summary.Skipped),
		slog.Int("errors_encountered", summary.Failed),
	)
	if summary.Failed > 0 {
		summaryLog.WarnContext(ctx, "Newsletter digest job finished with errors.")
		return summary, fmt.Errorf("job completed with %d errors", summary.Failed)
	}
	summaryLog.InfoContext(ctx, "Newsletter digest job finished successfully.")
	return summary, nil
}

func inStockBooks(books []*catalog.Book) []event.NewsletterBook {
	out := make([]event.NewsletterBook, 0, len(books))
	for _, b := range books {
		if !b.InStock() {
			continue
		}
		out = append(out, event.NewsletterBook{
			BookID:        b.ID,
			Name:          b.Name,
			AuthorName:    b.AuthorName,
			ReleaseDate:   b.ReleaseDate,
			NumberInStock: b.NumberInStock,
		})
	}
	return out
}
