// Package postgres implements the service repository interfaces against
// PostgreSQL using database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/shutterfest/notify/internal/domain"
	"github.com/shutterfest/notify/internal/service/subscriber"
)

// SubscriberRepo implements subscriber.Repository against PostgreSQL.
type SubscriberRepo struct{ db *sql.DB }

// NewSubscriberRepo creates a Postgres-backed subscriber repository.
func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

// Open connects to PostgreSQL and verifies the connection.
func Open(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (r *SubscriberRepo) Get(ctx context.Context, email string) (*domain.Subscriber, error) {
	var s domain.Subscriber
	err := r.db.QueryRowContext(ctx, `
		SELECT email, language, status, subscribed_at, unsubscribed_at, created_at, updated_at
		FROM subscribers
		WHERE email = $1
	`, email).Scan(&s.Email, &s.Language, &s.Status, &s.SubscribedAt, &s.UnsubscribedAt, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriber: %w", err)
	}
	return &s, nil
}

func (r *SubscriberRepo) Upsert(ctx context.Context, s *domain.Subscriber) error {
	// created_at keeps its original value on conflict; the other columns
	// take whatever the service computed.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscribers (email, language, status, subscribed_at, unsubscribed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET
			language = $2, status = $3, subscribed_at = $4, unsubscribed_at = $5, updated_at = $7
	`, s.Email, s.Language, s.Status, s.SubscribedAt, s.UnsubscribedAt, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert subscriber: %w", err)
	}
	return nil
}

func (r *SubscriberRepo) MarkUnsubscribed(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscribers
		SET status = 'unsubscribed', unsubscribed_at = NOW(), updated_at = NOW()
		WHERE email = $1 AND status = 'subscribed'
	`, email)
	if err != nil {
		return fmt.Errorf("mark unsubscribed: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return subscriber.ErrNotSubscribed
	}
	return nil
}

func (r *SubscriberRepo) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT email, language, status, subscribed_at, unsubscribed_at, created_at, updated_at
		FROM subscribers
		WHERE status = 'subscribed'
		ORDER BY email
	`)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	defer rows.Close()

	var out []domain.Subscriber
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.Email, &s.Language, &s.Status, &s.SubscribedAt, &s.UnsubscribedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SubscriberRepo) Counts(ctx context.Context) (subscribed, unsubscribed int, byLanguage map[string]int, err error) {
	byLanguage = make(map[string]int)

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, language, COUNT(*)
		FROM subscribers
		GROUP BY status, language
	`)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("count subscribers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status, language string
		var n int
		if err := rows.Scan(&status, &language, &n); err != nil {
			return 0, 0, nil, fmt.Errorf("scan counts: %w", err)
		}
		if status == string(domain.SubscriberSubscribed) {
			subscribed += n
			byLanguage[language] += n
		} else {
			unsubscribed += n
		}
	}
	return subscribed, unsubscribed, byLanguage, rows.Err()
}
