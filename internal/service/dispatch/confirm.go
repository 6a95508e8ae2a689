package dispatch

import (
	"context"

	"github.com/google/uuid"

	"github.com/shutterfest/notify/internal/domain"
	"github.com/shutterfest/notify/internal/pkg/logger"
	"github.com/shutterfest/notify/internal/render"
)

// SendConfirmations invites photographers to an event. Each recipient gets
// their own signed confirmation link; a failed issue, render or send for
// one photographer never blocks the others.
func (s *Service) SendConfirmations(ctx context.Context, event domain.Event, recipients []domain.Photographer) (*BatchResult, error) {
	if event.ID == "" || event.Title == "" || len(recipients) == 0 {
		return nil, ErrMissingRequiredData
	}

	batchID := uuid.New().String()
	logger.Info("confirmation dispatch starting",
		"batch_id", batchID,
		"event_id", event.ID,
		"recipients", len(recipients))

	jobs := make([]job, len(recipients))
	for i, p := range recipients {
		p := p
		jobs[i] = job{
			email: p.Email,
			send: func(ctx context.Context) error {
				link, err := s.links.Link(event.ID, p.ID)
				if err != nil {
					return err
				}
				msg, err := s.renderer.Render(render.KindConfirmInvite, domain.DefaultLanguage, render.ConfirmContext(event, p, link))
				if err != nil {
					return err
				}
				return s.deliver(ctx, s.outbound(p.Email, msg))
			},
		}
	}

	batch := s.run(ctx, jobs)
	batch.BatchID = batchID

	logger.Info("confirmation dispatch finished",
		"batch_id", batchID,
		"event_id", event.ID,
		"sent", batch.SentCount,
		"errors", batch.ErrorCount)

	return batch, nil
}
