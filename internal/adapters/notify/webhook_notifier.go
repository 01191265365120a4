package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
	"github.com/opsledger/purchase_mgmt_app/internal/middleware"
)

// webhookNotifier posts transition events to a configured webhook endpoint.
// Dispatch is best-effort: every failure is logged and swallowed so a
// committed transition is never reported as failed because of it.
type webhookNotifier struct {
	client     *resty.Client
	webhookURL string
}

// NewWebhookNotifier creates a webhook-backed notifier. An empty URL yields a
// notifier that drops every event.
func NewWebhookNotifier(webhookURL string, timeout time.Duration) portssvc.Notifier {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(1)
	return &webhookNotifier{
		client:     client,
		webhookURL: webhookURL,
	}
}

var _ portssvc.Notifier = (*webhookNotifier)(nil)

type transitionEvent struct {
	Event               string    `json:"event"`
	RequestID           string    `json:"requestID"`
	RequestNumber       int64     `json:"requestNumber"`
	Status              string    `json:"status"`
	PendingApproverID   *string   `json:"pendingApproverID,omitempty"`
	PendingApproverRole *string   `json:"pendingApproverRole,omitempty"`
	OccurredAt          time.Time `json:"occurredAt"`
}

// Notify posts the event. Errors are logged, never returned.
func (n *webhookNotifier) Notify(ctx context.Context, event domain.Action, request *domain.PurchaseRequest) {
	if n.webhookURL == "" {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	payload := transitionEvent{
		Event:               string(event),
		RequestID:           request.RequestID,
		RequestNumber:       request.RequestNumber,
		Status:              string(request.Status),
		PendingApproverID:   request.PendingApproverID,
		PendingApproverRole: request.PendingApproverRole,
		OccurredAt:          time.Now().UTC(),
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.webhookURL)
	if err != nil {
		logger.Warn("Transition notification failed",
			slog.String("event", string(event)),
			slog.String("request_id", request.RequestID),
			slog.String("error", err.Error()))
		return
	}
	if resp.IsError() {
		logger.Warn("Transition notification rejected",
			slog.String("event", string(event)),
			slog.String("request_id", request.RequestID),
			slog.Int("status", resp.StatusCode()))
	}
}
