package services

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// AuditSvcFacade serves history reconstruction views over the transition ledger.
type AuditSvcFacade interface {
	// ListLogs returns a request's audit entries, ascending for flow-timeline
	// views, descending for recent-activity views.
	ListLogs(ctx context.Context, requestID string, ascending bool) ([]domain.AuditLogEntry, error)

	// Timeline returns the grouped flow timeline, ascending by time.
	Timeline(ctx context.Context, requestID string) ([]domain.TimelineGroup, error)
}
