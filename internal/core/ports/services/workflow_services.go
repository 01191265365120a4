package services

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
)

// WorkflowSvcFacade manages and serves the routing definition.
type WorkflowSvcFacade interface {
	// ActiveConfig returns the current configuration. It is read fresh on every
	// call so transitions never route on a stale definition after an edit.
	ActiveConfig(ctx context.Context) (*domain.WorkflowConfig, error)

	// ReplaceConfig validates and stores a full replacement definition.
	// Requires the workflow:manage capability.
	ReplaceConfig(ctx context.Context, req dto.ReplaceWorkflowConfigRequest, actorID string) (*domain.WorkflowConfig, error)
}
