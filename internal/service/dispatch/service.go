package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/shutterfest/notify/internal/config"
	"github.com/shutterfest/notify/internal/domain"
	"github.com/shutterfest/notify/internal/email"
	"github.com/shutterfest/notify/internal/pkg/logger"
	"github.com/shutterfest/notify/internal/render"
)

// SubscriberLister resolves the broadcast recipient list. The list is a
// snapshot: subscribers changing state mid-batch do not affect a running
// dispatch.
type SubscriberLister interface {
	ListActiveExcluding(ctx context.Context, exclude []string) ([]domain.Subscriber, error)
}

// LinkIssuer produces signed confirmation URLs for photographer invites.
type LinkIssuer interface {
	Link(eventID, photographerID string) (string, error)
}

// Limiter gates outbound sends. A nil Limiter means unlimited.
type Limiter interface {
	Wait(ctx context.Context, count int) error
}

// Service runs notification dispatches over a bounded worker pool.
type Service struct {
	subscribers SubscriberLister
	transport   email.Transport
	renderer    *render.Renderer
	links       LinkIssuer
	limiter     Limiter
	sender      config.SenderConfig
	workers     int
	sendTimeout time.Duration
}

// NewService creates a dispatch service. limiter may be nil.
func NewService(subscribers SubscriberLister, transport email.Transport, renderer *render.Renderer, links LinkIssuer, limiter Limiter, sender config.SenderConfig, cfg config.DispatchConfig) *Service {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	return &Service{
		subscribers: subscribers,
		transport:   transport,
		renderer:    renderer,
		links:       links,
		limiter:     limiter,
		sender:      sender,
		workers:     workers,
		sendTimeout: cfg.SendTimeout(),
	}
}

// job couples a recipient with the function that builds and sends their
// message. Building is deferred into the worker so render failures stay
// isolated per recipient.
type job struct {
	email string
	send  func(ctx context.Context) error
}

// run executes jobs over the worker pool. Results land at the job's input
// index, preserving order regardless of completion order. A cancelled
// context converts unprocessed jobs into synthetic failures so the caller
// still receives one result per recipient.
func (s *Service) run(ctx context.Context, jobs []job) *BatchResult {
	results := make([]RecipientResult, len(jobs))

	indexes := make(chan int)
	var wg sync.WaitGroup
	workers := s.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = s.process(ctx, jobs[i])
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return aggregate(results)
}

func (s *Service) process(ctx context.Context, j job) RecipientResult {
	if err := ctx.Err(); err != nil {
		return RecipientResult{Email: j.email, Error: "dispatch cancelled: " + err.Error()}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, 1); err != nil {
			return RecipientResult{Email: j.email, Error: "rate limit wait: " + err.Error()}
		}
	}

	sendCtx := ctx
	if s.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()
	}

	if err := j.send(sendCtx); err != nil {
		logger.Warn("dispatch send failed", "recipient", j.email, "error", err.Error())
		return RecipientResult{Email: j.email, Error: err.Error()}
	}
	return RecipientResult{Email: j.email, Success: true}
}

// deliver renders nothing; it hands a prebuilt message to the transport and
// folds transport-level and per-message failures into one error.
func (s *Service) deliver(ctx context.Context, msg *email.OutboundMessage) error {
	result, err := s.transport.Send(ctx, msg)
	if err != nil {
		return err
	}
	if !result.Success {
		return result.Error
	}
	return nil
}

func (s *Service) outbound(to string, msg *render.Message) *email.OutboundMessage {
	return &email.OutboundMessage{
		To:        to,
		FromEmail: s.sender.FromEmail,
		FromName:  s.sender.FromName,
		ReplyTo:   s.sender.ReplyTo,
		Subject:   msg.Subject,
		HTML:      msg.HTML,
		Text:      msg.Text,
	}
}
