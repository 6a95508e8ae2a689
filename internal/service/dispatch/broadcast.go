package dispatch

import (
	"context"

	"github.com/google/uuid"

	"github.com/shutterfest/notify/internal/domain"
	"github.com/shutterfest/notify/internal/pkg/logger"
	"github.com/shutterfest/notify/internal/render"
)

// NotifyNewEvent announces an event to every active subscriber, minus the
// exclusion set. Recipients are resolved once at dispatch time.
func (s *Service) NotifyNewEvent(ctx context.Context, event domain.Event, excludeEmails []string) (*BatchResult, error) {
	return s.broadcast(ctx, event, render.KindNewEvent, excludeEmails)
}

// NotifyEventUpdate announces a change to an event to every active
// subscriber.
func (s *Service) NotifyEventUpdate(ctx context.Context, event domain.Event) (*BatchResult, error) {
	return s.broadcast(ctx, event, render.KindEventUpdate, nil)
}

func (s *Service) broadcast(ctx context.Context, event domain.Event, kind render.Kind, excludeEmails []string) (*BatchResult, error) {
	if event.ID == "" || event.Title == "" || event.Date.IsZero() || event.Location == "" {
		return nil, ErrMissingRequiredData
	}

	recipients, err := s.subscribers.ListActiveExcluding(ctx, excludeEmails)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	logger.Info("broadcast starting",
		"batch_id", batchID,
		"kind", string(kind),
		"event_id", event.ID,
		"recipients", len(recipients),
		"excluded", len(excludeEmails))

	tmplCtx := render.EventContext(event)
	jobs := make([]job, len(recipients))
	for i, sub := range recipients {
		sub := sub
		jobs[i] = job{
			email: sub.Email,
			send: func(ctx context.Context) error {
				msg, err := s.renderer.Render(kind, sub.Language, tmplCtx)
				if err != nil {
					return err
				}
				return s.deliver(ctx, s.outbound(sub.Email, msg))
			},
		}
	}

	batch := s.run(ctx, jobs)
	batch.BatchID = batchID

	logger.Info("broadcast finished",
		"batch_id", batchID,
		"kind", string(kind),
		"event_id", event.ID,
		"sent", batch.SentCount,
		"errors", batch.ErrorCount)

	return batch, nil
}
