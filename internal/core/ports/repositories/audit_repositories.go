package repositories

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// AuditLogReader provides read-only access to the append-only transition ledger.
// Writes happen exclusively inside RequestWriter.ApplyTransition so the log
// entry and the request update share one transaction.
type AuditLogReader interface {
	// ListEntriesByRequest returns a request's log entries ordered ascending by
	// timestamp when ascending is true, descending otherwise.
	ListEntriesByRequest(ctx context.Context, requestID string, ascending bool) ([]domain.AuditLogEntry, error)
}
