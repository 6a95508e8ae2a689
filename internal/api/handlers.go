package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shutterfest/notify/internal/domain"
	"github.com/shutterfest/notify/internal/pkg/logger"
	"github.com/shutterfest/notify/internal/service/dispatch"
	"github.com/shutterfest/notify/internal/service/subscriber"
)

// SubscriberService is the slice of the subscriber service the API uses.
type SubscriberService interface {
	Subscribe(ctx context.Context, email, language string) (*subscriber.SubscribeResult, error)
	Unsubscribe(ctx context.Context, email string) error
	IsSubscribed(ctx context.Context, email string) (bool, error)
	GetStats(ctx context.Context) (*subscriber.Stats, error)
}

// Dispatcher is the slice of the dispatch service the API uses.
type Dispatcher interface {
	NotifyNewEvent(ctx context.Context, event domain.Event, excludeEmails []string) (*dispatch.BatchResult, error)
	NotifyEventUpdate(ctx context.Context, event domain.Event) (*dispatch.BatchResult, error)
	SendConfirmations(ctx context.Context, event domain.Event, recipients []domain.Photographer) (*dispatch.BatchResult, error)
}

// LinkVerifier validates confirmation tokens from /confirm links.
type LinkVerifier interface {
	Verify(token string) (eventID, photographerID string, err error)
}

// Handlers holds the services behind the HTTP endpoints.
type Handlers struct {
	subscribers SubscriberService
	dispatcher  Dispatcher
	verifier    LinkVerifier
	health      *HealthChecker
}

// NewHandlers creates the handler set.
func NewHandlers(subscribers SubscriberService, dispatcher Dispatcher, verifier LinkVerifier, health *HealthChecker) *Handlers {
	return &Handlers{
		subscribers: subscribers,
		dispatcher:  dispatcher,
		verifier:    verifier,
		health:      health,
	}
}

type subscribeRequest struct {
	Email    string `json:"email"`
	Language string `json:"language"`
}

// HandleSubscribe registers an email for event broadcasts.
//
//	POST /api/subscribe
func (h *Handlers) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.subscribers.Subscribe(r.Context(), req.Email, req.Language)
	if err == subscriber.ErrInvalidEmail {
		respondError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "subscribe failed")
		return
	}

	status := http.StatusCreated
	message := "subscribed"
	if result.AlreadySubscribed {
		status = http.StatusOK
		message = "already subscribed"
	}
	respondJSON(w, status, map[string]interface{}{
		"success":            true,
		"message":            message,
		"email":              result.Subscriber.Email,
		"language":           result.Subscriber.Language,
		"already_subscribed": result.AlreadySubscribed,
	})
}

type unsubscribeRequest struct {
	Email string `json:"email"`
}

// HandleUnsubscribe removes an email from future broadcasts. An address that
// was never subscribed reports unsubscribed=false without an error status.
//
//	POST /api/unsubscribe
func (h *Handlers) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.subscribers.Unsubscribe(r.Context(), req.Email)
	switch err {
	case nil:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":      true,
			"message":      "unsubscribed",
			"unsubscribed": true,
		})
	case subscriber.ErrNotSubscribed:
		// Negative outcome, not an error status.
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":      false,
			"message":      "email is not subscribed",
			"unsubscribed": false,
			"reason":       "not_subscribed",
		})
	case subscriber.ErrInvalidEmail:
		respondError(w, http.StatusBadRequest, "invalid email address")
	default:
		respondError(w, http.StatusInternalServerError, "unsubscribe failed")
	}
}

// HandleIsSubscribed reports whether an email currently receives broadcasts.
//
//	GET /api/subscribers/is-subscribed?email=...
func (h *Handlers) HandleIsSubscribed(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	subscribed, err := h.subscribers.IsSubscribed(r.Context(), email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	message := "email is not subscribed"
	if subscribed {
		message = "email is subscribed"
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    message,
		"subscribed": subscribed,
	})
}

// HandleStats returns aggregate subscriber counts.
//
//	GET /api/stats
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.subscribers.GetStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "stats failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "stats computed",
		"stats":   stats,
	})
}

type notifyRequest struct {
	Event         domain.Event `json:"event"`
	ExcludeEmails []string     `json:"exclude_emails,omitempty"`
}

// HandleNotifyNewEvent broadcasts a new event announcement.
//
//	POST /api/notify/new-event
func (h *Handlers) HandleNotifyNewEvent(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	batch, err := h.dispatcher.NotifyNewEvent(r.Context(), req.Event, req.ExcludeEmails)
	h.respondBatch(w, batch, err)
}

// HandleNotifyEventUpdate broadcasts an event change.
//
//	POST /api/notify/event-update
func (h *Handlers) HandleNotifyEventUpdate(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	batch, err := h.dispatcher.NotifyEventUpdate(r.Context(), req.Event)
	h.respondBatch(w, batch, err)
}

type confirmationsRequest struct {
	Event         domain.Event          `json:"event"`
	Photographers []domain.Photographer `json:"photographers"`
}

// HandleSendConfirmations invites photographers to confirm an event.
//
//	POST /api/confirmations/send
func (h *Handlers) HandleSendConfirmations(w http.ResponseWriter, r *http.Request) {
	var req confirmationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	batch, err := h.dispatcher.SendConfirmations(r.Context(), req.Event, req.Photographers)
	h.respondBatch(w, batch, err)
}

func (h *Handlers) respondBatch(w http.ResponseWriter, batch *dispatch.BatchResult, err error) {
	if err == dispatch.ErrMissingRequiredData {
		respondError(w, http.StatusBadRequest, "event data incomplete")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "dispatch failed")
		return
	}
	message := "batch dispatched"
	if !batch.Success {
		message = "batch dispatched with no successful sends"
	}
	respondJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		*dispatch.BatchResult
	}{batch.Success, message, batch})
}

// HandleConfirm resolves a confirmation link. The site frontend exchanges
// the decoded pair for the actual booking state.
//
//	GET /confirm?token=...
func (h *Handlers) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	eventID, photographerID, err := h.verifier.Verify(token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "confirmation link is invalid or expired")
		return
	}
	logger.Info("confirmation link resolved", "event_id", eventID, "photographer_id", photographerID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "confirmation link resolved",
		"confirmed":       true,
		"event_id":        eventID,
		"photographer_id": photographerID,
	})
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
