package subscriber

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/shutterfest/notify/internal/domain"
	"github.com/shutterfest/notify/internal/pkg/logger"
)

// lockStripes bounds the number of per-email mutexes.
const lockStripes = 64

// Service implements subscriber lifecycle business logic. It is safe for
// concurrent use: operations on the same normalized email are serialized
// through a striped lock.
type Service struct {
	repo  Repository
	locks [lockStripes]sync.Mutex
	now   func() time.Time
}

// NewService creates a subscriber service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) lockFor(email string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(email))
	return &s.locks[h.Sum32()%lockStripes]
}

// SubscribeResult reports the outcome of a Subscribe call.
type SubscribeResult struct {
	Subscriber *domain.Subscriber
	// AlreadySubscribed is true when the address was active before the call.
	AlreadySubscribed bool
}

// Subscribe registers an email for event broadcasts. Idempotent: subscribing
// an active address succeeds and updates the language preference in place.
// A previously unsubscribed address is reactivated.
func (s *Service) Subscribe(ctx context.Context, email, language string) (*SubscribeResult, error) {
	email = domain.NormalizeEmail(email)
	if !domain.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}
	language = domain.NormalizeLanguage(language)

	mu := s.lockFor(email)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if existing != nil && existing.Status == domain.SubscriberSubscribed {
		// Last writer wins on the language preference.
		if existing.Language != language {
			existing.Language = language
			existing.UpdatedAt = now
			if err := s.repo.Upsert(ctx, existing); err != nil {
				return nil, err
			}
		}
		return &SubscribeResult{Subscriber: existing, AlreadySubscribed: true}, nil
	}

	sub := &domain.Subscriber{
		Email:        email,
		Language:     language,
		Status:       domain.SubscriberSubscribed,
		SubscribedAt: now,
		UpdatedAt:    now,
	}
	if existing != nil {
		sub.CreatedAt = existing.CreatedAt
	} else {
		sub.CreatedAt = now
	}

	if err := s.repo.Upsert(ctx, sub); err != nil {
		return nil, err
	}

	logger.Info("subscriber added", "email", email, "language", language)
	return &SubscribeResult{Subscriber: sub}, nil
}

// Unsubscribe removes an email from future broadcasts. Returns
// ErrNotSubscribed when the address is absent or already unsubscribed.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if !domain.ValidateEmail(email) {
		return ErrInvalidEmail
	}

	mu := s.lockFor(email)
	mu.Lock()
	defer mu.Unlock()

	if err := s.repo.MarkUnsubscribed(ctx, email); err != nil {
		return err
	}
	logger.Info("subscriber removed", "email", email)
	return nil
}

// IsSubscribed reports whether the email currently receives broadcasts.
func (s *Service) IsSubscribed(ctx context.Context, email string) (bool, error) {
	email = domain.NormalizeEmail(email)
	sub, err := s.repo.Get(ctx, email)
	if err != nil {
		return false, err
	}
	return sub != nil && sub.Status == domain.SubscriberSubscribed, nil
}

// ListActiveExcluding returns active subscribers minus the exclusion set,
// ordered by email ascending. Exclusions are normalized before matching.
func (s *Service) ListActiveExcluding(ctx context.Context, exclude []string) ([]domain.Subscriber, error) {
	excluded := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		excluded[domain.NormalizeEmail(e)] = struct{}{}
	}

	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := active[:0:0]
	for _, sub := range active {
		if _, skip := excluded[sub.Email]; skip {
			continue
		}
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Stats holds aggregate subscriber counts.
type Stats struct {
	TotalSubscribed   int            `json:"total_subscribed"`
	TotalUnsubscribed int            `json:"total_unsubscribed"`
	ByLanguage        map[string]int `json:"by_language"`
}

// GetStats computes subscriber statistics from one repository snapshot.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	subscribed, unsubscribed, byLanguage, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	if byLanguage == nil {
		byLanguage = make(map[string]int)
	}
	return &Stats{
		TotalSubscribed:   subscribed,
		TotalUnsubscribed: unsubscribed,
		ByLanguage:        byLanguage,
	}, nil
}
