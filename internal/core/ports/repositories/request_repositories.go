package repositories

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// RequestReader defines read operations for purchase request data.
type RequestReader interface {
	// FindRequestByID retrieves a specific request by its unique identifier.
	FindRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error)

	// ListRequests retrieves requests ordered by request number descending.
	// An empty status filters nothing.
	ListRequests(ctx context.Context, status domain.RequestStatus, limit, offset int) ([]domain.PurchaseRequest, error)
}

// RequestWriter defines write operations for purchase request data.
type RequestWriter interface {
	// SaveRequest persists a new draft request and assigns its sequential number.
	SaveRequest(ctx context.Context, request *domain.PurchaseRequest) error

	// ApplyTransition atomically applies a computed transition: the request row
	// update and the audit log insert succeed or fail together. The update is
	// conditional on the request still holding expectedStatus and
	// expectedVersion; when the condition no longer holds the transition lost a
	// concurrency race and apperrors.ErrInvalidTransition is returned with no
	// partial state change.
	ApplyTransition(ctx context.Context, request domain.PurchaseRequest, expectedStatus domain.RequestStatus, expectedVersion int64, entry domain.AuditLogEntry) error
}

// RequestRepositoryFacade combines all request-related repository interfaces.
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
}
