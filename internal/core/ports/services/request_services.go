package services

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
)

// RequestSvcFacade is the workflow engine's public contract. ApplyAction is the
// single transition entry point used by every transport.
type RequestSvcFacade interface {
	// CreateRequest creates a new draft owned by the creator.
	CreateRequest(ctx context.Context, req dto.CreateRequestRequest, creatorID string) (*domain.PurchaseRequest, error)

	// GetRequest retrieves a request by id.
	GetRequest(ctx context.Context, requestID string) (*domain.PurchaseRequest, error)

	// ListRequests lists requests with an optional status filter.
	ListRequests(ctx context.Context, params dto.ListRequestsParams) ([]domain.PurchaseRequest, error)

	// ApplyAction validates and applies one workflow action against a request.
	// Preconditions fail before any write; the returned request reflects the
	// committed transition. A submit that lands on an empty applicable-node set
	// commits the transition and still returns apperrors.ErrNoApplicableApprover
	// together with the updated request.
	ApplyAction(ctx context.Context, requestID string, actorID string, payload dto.ActionRequest) (*domain.PurchaseRequest, error)

	// DuplicateRequest creates a fresh draft copy of an existing request owned
	// by the caller. Not a transition on the source request.
	DuplicateRequest(ctx context.Context, requestID string, actorID string) (*domain.PurchaseRequest, error)
}
