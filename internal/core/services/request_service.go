package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
	"github.com/opsledger/purchase_mgmt_app/internal/middleware"
)

// requestService is the purchase approval state machine. Every transition runs
// the same precondition ladder: request exists, actor resolved, capability
// held, status permits the action, payload valid. Only then is the effect
// computed and applied atomically through the repository's conditional update.
type requestService struct {
	requestRepo portsrepo.RequestRepositoryFacade
	workflowSvc portssvc.WorkflowSvcFacade
	employeeSvc portssvc.EmployeeSvcFacade
	capability  portssvc.CapabilityResolver
	notifier    portssvc.Notifier
	profile     domain.FlowProfile
}

// NewRequestService creates the workflow engine service.
func NewRequestService(
	requestRepo portsrepo.RequestRepositoryFacade,
	workflowSvc portssvc.WorkflowSvcFacade,
	employeeSvc portssvc.EmployeeSvcFacade,
	capability portssvc.CapabilityResolver,
	notifier portssvc.Notifier,
	profile domain.FlowProfile,
) portssvc.RequestSvcFacade {
	return &requestService{
		requestRepo: requestRepo,
		workflowSvc: workflowSvc,
		employeeSvc: employeeSvc,
		capability:  capability,
		notifier:    notifier,
		profile:     profile,
	}
}

var _ portssvc.RequestSvcFacade = (*requestService)(nil)

// CreateRequest creates a new draft purchase request owned by the creator.
func (s *requestService) CreateRequest(ctx context.Context, req dto.CreateRequestRequest, creatorID string) (*domain.PurchaseRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if creatorID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if req.UnitPrice.IsNegative() || req.FeeAmount.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", apperrors.ErrValidation)
	}

	purchaserID := req.PurchaserID
	if purchaserID == "" {
		purchaserID = creatorID
	} else if _, err := s.employeeSvc.GetEmployeeByID(ctx, purchaserID); err != nil {
		return nil, fmt.Errorf("purchaser %s: %w", purchaserID, err)
	}

	now := time.Now().UTC()
	request := &domain.PurchaseRequest{
		RequestID:    uuid.NewString(),
		CreatorID:    creatorID,
		PurchaserID:  purchaserID,
		Organization: domain.OrganizationType(req.Organization),
		ItemName:     req.ItemName,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		FeeAmount:    req.FeeAmount,
		TotalAmount:  domain.ComputeTotal(req.Quantity, req.UnitPrice, req.FeeAmount),
		PaidAmount:   decimal.Zero,
		Status:       domain.StatusDraft,
		NodeIndex:    -1,
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		logger.Error("Failed to save purchase request", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save purchase request: %w", err)
	}

	logger.Info("Purchase request created", slog.String("request_id", request.RequestID), slog.Int64("request_number", request.RequestNumber))
	return request, nil
}

// GetRequest retrieves a request by id.
func (s *requestService) GetRequest(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	return request, nil
}

// ListRequests lists requests with an optional status filter.
func (s *requestService) ListRequests(ctx context.Context, params dto.ListRequestsParams) ([]domain.PurchaseRequest, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	requests, err := s.requestRepo.ListRequests(ctx, domain.RequestStatus(params.Status), limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// DuplicateRequest copies an existing request into a fresh draft owned by the
// caller. The copy gets its own number and a duplicate log entry; the source
// request is untouched.
func (s *requestService) DuplicateRequest(ctx context.Context, requestID string, actorID string) (*domain.PurchaseRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actorID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	source, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	copyReq := &domain.PurchaseRequest{
		RequestID:    uuid.NewString(),
		CreatorID:    actorID,
		PurchaserID:  actorID,
		Organization: source.Organization,
		ItemName:     source.ItemName,
		Quantity:     source.Quantity,
		UnitPrice:    source.UnitPrice,
		FeeAmount:    source.FeeAmount,
		TotalAmount:  source.TotalAmount,
		PaidAmount:   decimal.Zero,
		Status:       domain.StatusDraft,
		NodeIndex:    -1,
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.requestRepo.SaveRequest(ctx, copyReq); err != nil {
		logger.Error("Failed to save duplicated request", slog.String("error", err.Error()), slog.String("source_request_id", requestID))
		return nil, fmt.Errorf("failed to save duplicated request: %w", err)
	}

	entry := s.newLogEntry(copyReq.RequestID, domain.ActionDuplicate, actor, domain.StatusDraft, domain.StatusDraft,
		fmt.Sprintf("duplicated from request #%d", source.RequestNumber), now)
	// The copy is already persisted; record the duplicate entry against its
	// current (unchanged) state.
	if err := s.requestRepo.ApplyTransition(ctx, *copyReq, domain.StatusDraft, copyReq.Version, entry); err != nil {
		logger.Error("Failed to record duplicate log entry", slog.String("error", err.Error()), slog.String("request_id", copyReq.RequestID))
		return nil, fmt.Errorf("failed to record duplicate log entry: %w", err)
	}
	copyReq.Version++

	logger.Info("Request duplicated", slog.String("source_request_id", requestID), slog.String("request_id", copyReq.RequestID))
	return copyReq, nil
}

// ApplyAction validates and applies one workflow action. All precondition
// failures return before any write; the transition itself is atomic.
func (s *requestService) ApplyAction(ctx context.Context, requestID string, actorID string, payload dto.ActionRequest) (*domain.PurchaseRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.KnownAction(payload.Action) {
		return nil, fmt.Errorf("%w: unknown action %q", apperrors.ErrValidation, payload.Action)
	}
	if payload.Action == domain.ActionDuplicate {
		return s.DuplicateRequest(ctx, requestID, actorID)
	}

	// 1. Request exists.
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}

	// 2. Actor is authenticated and resolvable.
	if actorID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	// 3. Capability and ownership/assignment checks.
	if err := s.authorizeAction(ctx, request, actor, payload.Action); err != nil {
		logger.Warn("Action not authorized",
			slog.String("request_id", requestID),
			slog.String("action", string(payload.Action)),
			slog.String("error", err.Error()))
		return nil, err
	}

	// 4. Status permits the action.
	if !request.Status.AllowsAction(payload.Action, s.profile) {
		return nil, fmt.Errorf("%w: cannot %s: request is %s", apperrors.ErrInvalidTransition, payload.Action, request.Status)
	}

	// 5. Payload-specific validation.
	if err := s.validatePayload(ctx, request, actor, payload); err != nil {
		return nil, err
	}

	// Compute the full effect before any write.
	expectedStatus := request.Status
	expectedVersion := request.Version
	now := time.Now().UTC()

	updated := *request
	comment := firstNonEmpty(payload.Reason, payload.Comment, payload.Note)
	var engineErr error // surfaced after commit (NoApplicableApprover)

	switch payload.Action {
	case domain.ActionSubmit:
		engineErr, err = s.applySubmit(ctx, &updated, actorID, now)
		if err != nil {
			return nil, err
		}
	case domain.ActionApprove:
		if err := s.applyApprove(ctx, &updated, actorID, now); err != nil {
			return nil, err
		}
	case domain.ActionReject:
		updated.Status = domain.StatusRejected
		updated.RejectedAt = &now
		updated.RejectedBy = &actorID
		clearAssignment(&updated)
	case domain.ActionTransfer:
		updated.PendingApproverID = &payload.ToApproverID
		updated.PendingApproverRole = nil
		// Transfer never advances the node index.
	case domain.ActionWithdraw:
		updated.Status = domain.StatusDraft
		updated.SubmittedAt = nil
		updated.SubmittedBy = nil
		clearAssignment(&updated)
	case domain.ActionCancel:
		updated.Status = domain.StatusCancelled
		clearAssignment(&updated)
	case domain.ActionPay, domain.ActionSubmitReimbursement:
		updated.PaidAmount = updated.PaidAmount.Add(*payload.Amount)
		if updated.PaidAmount.GreaterThanOrEqual(updated.TotalAmount) {
			updated.Status = domain.StatusPaid
			updated.PaidAt = &now
			updated.PaidBy = &actorID
		}
	case domain.ActionIssue, domain.ActionResolveIssue:
		// Status unchanged; the log entry carries the note.
	}

	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID
	updated.Version = expectedVersion + 1

	entry := s.newLogEntry(request.RequestID, payload.Action, actor, expectedStatus, updated.Status, comment, now)

	// Atomic commit: request update and audit insert succeed or fail together;
	// a lost race surfaces as ErrInvalidTransition with no partial state.
	if err := s.requestRepo.ApplyTransition(ctx, updated, expectedStatus, expectedVersion, entry); err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			logger.Warn("Transition lost concurrency race",
				slog.String("request_id", requestID),
				slog.String("action", string(payload.Action)))
			return nil, fmt.Errorf("%w: cannot %s: request state changed concurrently", apperrors.ErrInvalidTransition, payload.Action)
		}
		logger.Error("Failed to apply transition", slog.String("error", err.Error()), slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to apply %s: %w", payload.Action, err)
	}

	logger.Info("Transition applied",
		slog.String("request_id", requestID),
		slog.String("action", string(payload.Action)),
		slog.String("from_status", string(expectedStatus)),
		slog.String("to_status", string(updated.Status)))

	// Best-effort, strictly post-commit. The notifier swallows its own errors.
	s.notifier.Notify(ctx, payload.Action, &updated)

	if engineErr != nil {
		return &updated, engineErr
	}
	return &updated, nil
}

// applySubmit resolves the first applicable node and moves the draft into
// approval. A disabled workflow short-circuits to the terminal approved status;
// an empty applicable set still commits but flags the configuration gap.
func (s *requestService) applySubmit(ctx context.Context, request *domain.PurchaseRequest, actorID string, now time.Time) (engineErr error, err error) {
	config, err := s.workflowSvc.ActiveConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow config: %w", err)
	}

	request.SubmittedAt = &now
	request.SubmittedBy = &actorID

	if !config.Enabled {
		request.Status = s.profile.TerminalApprovedStatus()
		request.ApprovedAt = &now
		request.ApprovedBy = &actorID
		clearAssignment(request)
		return nil, nil
	}

	request.Status = domain.StatusPendingApproval
	node := config.FirstApplicableNode(request.Organization, request.TotalAmount)
	if node == nil {
		clearAssignment(request)
		return fmt.Errorf("%w: no workflow node applies to organization %s and amount %s",
			apperrors.ErrNoApplicableApprover, request.Organization, request.TotalAmount), nil
	}
	assignNode(request, node)
	return nil, nil
}

// applyApprove advances to the next applicable node or terminates the approval
// stage. The config is re-read so routing reflects edits made mid-flight.
func (s *requestService) applyApprove(ctx context.Context, request *domain.PurchaseRequest, actorID string, now time.Time) error {
	config, err := s.workflowSvc.ActiveConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load workflow config: %w", err)
	}

	next := config.NextApplicableNode(request.Organization, request.TotalAmount, request.NodeIndex)
	if next != nil {
		assignNode(request, next)
		return nil
	}

	request.Status = s.profile.TerminalApprovedStatus()
	request.ApprovedAt = &now
	request.ApprovedBy = &actorID
	clearAssignment(request)
	return nil
}

// authorizeAction enforces the capability gate plus ownership and assignment rules.
func (s *requestService) authorizeAction(ctx context.Context, request *domain.PurchaseRequest, actor *domain.Employee, action domain.Action) error {
	capability := domain.CapabilityFor(action)
	allowed, err := s.capability.Check(ctx, actor.EmployeeID, capability)
	if err != nil {
		return fmt.Errorf("failed to check capability %s: %w", capability, err)
	}
	if !allowed {
		return fmt.Errorf("%w: missing capability %s", apperrors.ErrForbidden, capability)
	}

	switch action {
	case domain.ActionSubmit, domain.ActionWithdraw, domain.ActionCancel:
		if request.CreatorID != actor.EmployeeID {
			return fmt.Errorf("%w: only the request owner may %s", apperrors.ErrForbidden, action)
		}
	case domain.ActionSubmitReimbursement:
		if request.PurchaserID != actor.EmployeeID {
			return fmt.Errorf("%w: only the purchaser may submit a reimbursement", apperrors.ErrForbidden)
		}
	case domain.ActionApprove, domain.ActionReject, domain.ActionTransfer:
		if !request.IsAwaitingApproval() {
			return nil // status compatibility rejects it next with the precise message
		}
		if request.EligibleApprover(actor.EmployeeID, actor.Role) {
			return nil
		}
		override, err := s.capability.Check(ctx, actor.EmployeeID, domain.CapAdminOverride)
		if err != nil {
			return fmt.Errorf("failed to check override capability: %w", err)
		}
		if !override {
			return fmt.Errorf("%w: not the pending approver for this request", apperrors.ErrForbidden)
		}
	}
	return nil
}

// validatePayload runs the action-specific payload rules.
func (s *requestService) validatePayload(ctx context.Context, request *domain.PurchaseRequest, actor *domain.Employee, payload dto.ActionRequest) error {
	switch payload.Action {
	case domain.ActionReject, domain.ActionWithdraw, domain.ActionTransfer:
		if strings.TrimSpace(payload.Reason) == "" {
			return fmt.Errorf("%w: a reason is required for %s", apperrors.ErrValidation, payload.Action)
		}
	}

	switch payload.Action {
	case domain.ActionTransfer:
		if payload.ToApproverID == "" {
			return fmt.Errorf("%w: transfer target is required", apperrors.ErrValidation)
		}
		if payload.ToApproverID == actor.EmployeeID {
			return fmt.Errorf("%w: cannot transfer approval to yourself", apperrors.ErrValidation)
		}
		target, err := s.employeeSvc.GetEmployeeByID(ctx, payload.ToApproverID)
		if err != nil {
			return fmt.Errorf("transfer target %s: %w", payload.ToApproverID, err)
		}
		if !target.IsActive {
			return fmt.Errorf("%w: transfer target %s is inactive", apperrors.ErrValidation, payload.ToApproverID)
		}
		allowed, err := s.capability.RoleAllows(ctx, target.Role, domain.CapApproveRequest)
		if err != nil {
			return fmt.Errorf("failed to check transfer target role: %w", err)
		}
		if !allowed {
			return fmt.Errorf("%w: transfer target role %s cannot approve requests", apperrors.ErrValidation, target.Role)
		}
	case domain.ActionApprove:
		if node := s.currentNode(ctx, request); node != nil && node.RequireComment && strings.TrimSpace(payload.Comment) == "" {
			return fmt.Errorf("%w: this approval step requires a comment", apperrors.ErrValidation)
		}
	case domain.ActionPay, domain.ActionSubmitReimbursement:
		if payload.Amount == nil || !payload.Amount.IsPositive() {
			return fmt.Errorf("%w: a positive amount is required for %s", apperrors.ErrValidation, payload.Action)
		}
		if payload.Amount.GreaterThan(request.RemainingAmount()) {
			return fmt.Errorf("%w: amount %s exceeds remaining balance %s",
				apperrors.ErrValidation, payload.Amount, request.RemainingAmount())
		}
	}
	return nil
}

// currentNode resolves the configured node the request is currently parked on,
// or nil when the index no longer matches the configuration.
func (s *requestService) currentNode(ctx context.Context, request *domain.PurchaseRequest) *domain.WorkflowNode {
	if request.NodeIndex < 0 {
		return nil
	}
	config, err := s.workflowSvc.ActiveConfig(ctx)
	if err != nil || request.NodeIndex >= len(config.Nodes) {
		return nil
	}
	node := config.Nodes[request.NodeIndex]
	return &node
}

func (s *requestService) resolveActor(ctx context.Context, actorID string) (*domain.Employee, error) {
	actor, err := s.employeeSvc.GetEmployeeByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: actor %s has no employee record", apperrors.ErrForbidden, actorID)
	}
	if !actor.IsActive {
		return nil, fmt.Errorf("%w: actor %s is inactive", apperrors.ErrForbidden, actorID)
	}
	return actor, nil
}

func (s *requestService) newLogEntry(requestID string, action domain.Action, operator *domain.Employee, from, to domain.RequestStatus, comment string, at time.Time) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		RequestID:    requestID,
		Action:       action,
		OperatorID:   operator.EmployeeID,
		OperatorName: operator.Name,
		FromStatus:   from,
		ToStatus:     to,
		Comment:      comment,
		CreatedAt:    at,
	}
}

// assignNode parks the request on an approval node, resolving the pending
// approver per the node's targeting: a user node pins one individual, a role
// node leaves the id open so any active role holder is eligible.
func assignNode(request *domain.PurchaseRequest, node *domain.ResolvedNode) {
	request.NodeIndex = node.ConfigIndex
	switch node.ApproverType {
	case domain.ApproverUser:
		request.PendingApproverID = node.ApproverUserID
		request.PendingApproverRole = nil
	case domain.ApproverRole:
		request.PendingApproverID = nil
		request.PendingApproverRole = node.ApproverRole
	}
}

func clearAssignment(request *domain.PurchaseRequest) {
	request.PendingApproverID = nil
	request.PendingApproverRole = nil
	request.NodeIndex = -1
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
