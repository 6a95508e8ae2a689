package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/shutterfest/notify/internal/domain"
	"github.com/shutterfest/notify/internal/service/subscriber"
)

func subscriberColumns() []string {
	return []string{"email", "language", "status", "subscribed_at", "unsubscribed_at", "created_at", "updated_at"}
}

func TestGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT email, language, status`).
		WithArgs("user@example.com").
		WillReturnRows(sqlmock.NewRows(subscriberColumns()).
			AddRow("user@example.com", "en", "subscribed", now, nil, now, now))

	repo := NewSubscriberRepo(db)
	sub, err := repo.Get(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sub == nil || sub.Email != "user@example.com" {
		t.Fatalf("unexpected subscriber: %+v", sub)
	}
	if sub.Status != domain.SubscriberSubscribed {
		t.Errorf("unexpected status %q", sub.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT email, language, status`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(subscriberColumns()))

	repo := NewSubscriberRepo(db)
	sub, err := repo.Get(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sub != nil {
		t.Errorf("expected nil for absent email, got %+v", sub)
	}
}

func TestUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	created := now.Add(-time.Hour)
	mock.ExpectExec(`INSERT INTO subscribers`).
		WithArgs("user@example.com", "de", "subscribed", now, nil, created, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSubscriberRepo(db)
	err = repo.Upsert(context.Background(), &domain.Subscriber{
		Email:        "user@example.com",
		Language:     "de",
		Status:       domain.SubscriberSubscribed,
		SubscribedAt: now,
		CreatedAt:    created,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMarkUnsubscribed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE subscribers`).
		WithArgs("user@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSubscriberRepo(db)
	if err := repo.MarkUnsubscribed(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("MarkUnsubscribed failed: %v", err)
	}
}

func TestMarkUnsubscribedNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE subscribers`).
		WithArgs("ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSubscriberRepo(db)
	err = repo.MarkUnsubscribed(context.Background(), "ghost@example.com")
	if err != subscriber.ErrNotSubscribed {
		t.Errorf("expected ErrNotSubscribed, got %v", err)
	}
}

func TestListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT email, language, status`).
		WillReturnRows(sqlmock.NewRows(subscriberColumns()).
			AddRow("a@x.com", "en", "subscribed", now, nil, now, now).
			AddRow("b@x.com", "de", "subscribed", now, nil, now, now))

	repo := NewSubscriberRepo(db)
	subs, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscribers, got %d", len(subs))
	}
	if subs[0].Email != "a@x.com" || subs[1].Email != "b@x.com" {
		t.Errorf("unexpected order: %s, %s", subs[0].Email, subs[1].Email)
	}
}

func TestCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT status, language, COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "language", "count"}).
			AddRow("subscribed", "en", 5).
			AddRow("subscribed", "de", 3).
			AddRow("unsubscribed", "en", 2))

	repo := NewSubscriberRepo(db)
	subscribed, unsubscribed, byLanguage, err := repo.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if subscribed != 8 {
		t.Errorf("expected 8 subscribed, got %d", subscribed)
	}
	if unsubscribed != 2 {
		t.Errorf("expected 2 unsubscribed, got %d", unsubscribed)
	}
	if byLanguage["en"] != 5 || byLanguage["de"] != 3 {
		t.Errorf("unexpected language breakdown: %v", byLanguage)
	}
}
