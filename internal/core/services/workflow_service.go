package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
	"github.com/opsledger/purchase_mgmt_app/internal/middleware"
)

// workflowService manages the singleton routing definition. Reads go straight
// to storage on every call so the engine never routes on a stale definition.
type workflowService struct {
	workflowRepo portsrepo.WorkflowConfigRepository
	capability   portssvc.CapabilityResolver
}

// NewWorkflowService creates a new workflow configuration service.
func NewWorkflowService(workflowRepo portsrepo.WorkflowConfigRepository, capability portssvc.CapabilityResolver) portssvc.WorkflowSvcFacade {
	return &workflowService{
		workflowRepo: workflowRepo,
		capability:   capability,
	}
}

var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

// ActiveConfig returns the stored configuration. A deployment that has never
// saved one gets an empty disabled config rather than an error, so submits
// fall through to the disabled-workflow path.
func (s *workflowService) ActiveConfig(ctx context.Context) (*domain.WorkflowConfig, error) {
	config, err := s.workflowRepo.LoadConfig(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.WorkflowConfig{Enabled: false, Version: 0}, nil
		}
		return nil, fmt.Errorf("failed to load workflow config: %w", err)
	}
	return config, nil
}

// ReplaceConfig validates and stores a full replacement definition. There is
// no partial patch: the caller sends the complete node list every time.
func (s *workflowService) ReplaceConfig(ctx context.Context, req dto.ReplaceWorkflowConfigRequest, actorID string) (*domain.WorkflowConfig, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actorID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	allowed, err := s.capability.Check(ctx, actorID, domain.CapManageWorkflow)
	if err != nil {
		return nil, fmt.Errorf("failed to check capability: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: missing capability %s", apperrors.ErrForbidden, domain.CapManageWorkflow)
	}

	nodes := make([]domain.WorkflowNode, len(req.Nodes))
	for i, n := range req.Nodes {
		nodes[i] = n.ToWorkflowNode()
	}

	config := domain.WorkflowConfig{
		Enabled:   req.Enabled,
		Version:   req.Version + 1,
		Nodes:     nodes,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: actorID,
	}
	if err := config.Validate(); err != nil {
		logger.Warn("Workflow config failed validation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}

	if err := s.workflowRepo.ReplaceConfig(ctx, config, req.Version); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Workflow config version conflict", slog.Int64("expected_version", req.Version))
			return nil, fmt.Errorf("%w: workflow config was modified concurrently", apperrors.ErrConflict)
		}
		logger.Error("Failed to replace workflow config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to replace workflow config: %w", err)
	}

	logger.Info("Workflow config replaced",
		slog.Int64("version", config.Version),
		slog.Int("node_count", len(config.Nodes)),
		slog.Bool("enabled", config.Enabled))
	return &config, nil
}
