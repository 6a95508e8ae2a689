package subscriber

import (
	"context"

	"github.com/shutterfest/notify/internal/domain"
)

// Repository defines the data access contract for subscriber records.
type Repository interface {
	// Get returns the record for a normalized email, or domain.ErrNoRecord
	// equivalent via (nil, nil) when absent.
	Get(ctx context.Context, email string) (*domain.Subscriber, error)

	// Upsert writes a subscriber record, creating or replacing by email.
	Upsert(ctx context.Context, s *domain.Subscriber) error

	// MarkUnsubscribed flips a subscribed record and stamps UnsubscribedAt.
	// Returns ErrNotSubscribed if no subscribed record exists for the email.
	MarkUnsubscribed(ctx context.Context, email string) error

	// ListActive returns all subscribed records ordered by email ascending.
	ListActive(ctx context.Context) ([]domain.Subscriber, error)

	// Counts returns subscribed and unsubscribed totals plus the
	// per-language breakdown of subscribed records, read from one snapshot.
	Counts(ctx context.Context) (subscribed, unsubscribed int, byLanguage map[string]int, err error)
}
