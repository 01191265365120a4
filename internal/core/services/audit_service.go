package services

import (
	"context"
	"fmt"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
)

// auditService reconstructs request history from the append-only ledger.
type auditService struct {
	requestRepo portsrepo.RequestReader
	auditRepo   portsrepo.AuditLogReader
}

// NewAuditService creates a new audit history service.
func NewAuditService(requestRepo portsrepo.RequestReader, auditRepo portsrepo.AuditLogReader) portssvc.AuditSvcFacade {
	return &auditService{
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// ListLogs returns a request's audit entries in the requested order.
func (s *auditService) ListLogs(ctx context.Context, requestID string, ascending bool) ([]domain.AuditLogEntry, error) {
	if _, err := s.requestRepo.FindRequestByID(ctx, requestID); err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	entries, err := s.auditRepo.ListEntriesByRequest(ctx, requestID, ascending)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries for request %s: %w", requestID, err)
	}
	return entries, nil
}

// Timeline groups the request's log ascending by time into workflow steps.
// The grouping is a pure function of the entries, so re-rendering the same log
// set always yields the same timeline.
func (s *auditService) Timeline(ctx context.Context, requestID string) ([]domain.TimelineGroup, error) {
	entries, err := s.ListLogs(ctx, requestID, true)
	if err != nil {
		return nil, err
	}
	return domain.BuildTimeline(entries), nil
}
