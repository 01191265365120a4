package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the single source of truth for what can happen next to a request.
type RequestStatus string

const (
	StatusDraft           RequestStatus = "draft"
	StatusPendingApproval RequestStatus = "pending_approval"
	StatusApproved        RequestStatus = "approved"
	StatusPendingInbound  RequestStatus = "pending_inbound"
	StatusRejected        RequestStatus = "rejected"
	StatusPaid            RequestStatus = "paid"
	StatusCancelled       RequestStatus = "cancelled"
)

// IsTerminal reports whether the status has no outgoing transitions.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Action is a workflow action submitted against a purchase request.
type Action string

const (
	ActionSubmit              Action = "submit"
	ActionApprove             Action = "approve"
	ActionReject              Action = "reject"
	ActionTransfer            Action = "transfer"
	ActionWithdraw            Action = "withdraw"
	ActionSubmitReimbursement Action = "submit_reimbursement"
	ActionPay                 Action = "pay"
	ActionIssue               Action = "issue"
	ActionResolveIssue        Action = "resolve_issue"
	ActionCancel              Action = "cancel"
	ActionDuplicate           Action = "duplicate" // creates a new draft, never a transition
)

// KnownAction reports whether a is a recognized workflow action.
func KnownAction(a Action) bool {
	switch a {
	case ActionSubmit, ActionApprove, ActionReject, ActionTransfer, ActionWithdraw,
		ActionSubmitReimbursement, ActionPay, ActionIssue, ActionResolveIssue,
		ActionCancel, ActionDuplicate:
		return true
	}
	return false
}

// statusActions is the status/action compatibility table. Payment-stage rows
// depend on the deployment profile, see AllowsAction.
var statusActions = map[RequestStatus]map[Action]bool{
	StatusDraft: {
		ActionSubmit: true,
		ActionCancel: true,
	},
	StatusPendingApproval: {
		ActionApprove:  true,
		ActionReject:   true,
		ActionTransfer: true,
		ActionWithdraw: true,
	},
	StatusApproved: {
		ActionPay:                 true,
		ActionSubmitReimbursement: true,
	},
	StatusPendingInbound: {
		ActionPay:                 true,
		ActionSubmitReimbursement: true,
		ActionIssue:               true,
		ActionResolveIssue:        true,
	},
	StatusRejected:  {},
	StatusPaid:      {},
	StatusCancelled: {},
}

// AllowsAction reports whether the action is legal for the status under the
// given profile. Duplicate is not a transition and is always permitted.
func (s RequestStatus) AllowsAction(a Action, p FlowProfile) bool {
	if a == ActionDuplicate {
		return true
	}
	allowed, ok := statusActions[s]
	if !ok {
		return false
	}
	if !allowed[a] {
		return false
	}
	// The inbound stage only exists in the extended profile.
	if s == StatusPendingInbound && p != ProfileExtended {
		return false
	}
	return true
}

// FlowProfile selects the deployment's status set.
type FlowProfile string

const (
	// ProfileSimple terminates approval at StatusApproved.
	ProfileSimple FlowProfile = "simple"
	// ProfileExtended routes approved requests through StatusPendingInbound.
	ProfileExtended FlowProfile = "extended"
)

// TerminalApprovedStatus is the status a fully approved request lands on.
func (p FlowProfile) TerminalApprovedStatus() RequestStatus {
	if p == ProfileExtended {
		return StatusPendingInbound
	}
	return StatusApproved
}

// OrganizationType is the branch of the organization a request belongs to.
type OrganizationType string

const (
	OrgSchool  OrganizationType = "school"
	OrgCompany OrganizationType = "company"
)

// PurchaseRequest is the aggregate under workflow control.
type PurchaseRequest struct {
	RequestID     string           `json:"requestID"`     // Primary key (UUID)
	RequestNumber int64            `json:"requestNumber"` // Human-readable sequential number
	CreatorID     string           `json:"creatorID"`
	PurchaserID   string           `json:"purchaserID"` // May differ from the creator
	Organization  OrganizationType `json:"organization"`

	ItemName    string          `json:"itemName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	FeeAmount   decimal.Decimal `json:"feeAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"` // quantity*unitPrice + fee, fixed at creation
	PaidAmount  decimal.Decimal `json:"paidAmount"`  // partial-payment accumulator

	Status RequestStatus `json:"status"`

	// PendingApproverID is the individual currently empowered to act; nil with a
	// non-nil PendingApproverRole means "any active holder of that role".
	PendingApproverID   *string `json:"pendingApproverID,omitempty"`
	PendingApproverRole *string `json:"pendingApproverRole,omitempty"`
	// NodeIndex is the position of the current approval node in the configured
	// node list, or -1 outside of approval.
	NodeIndex int `json:"nodeIndex"`

	// Version is the optimistic concurrency token checked by conditional updates.
	Version int64 `json:"version"`

	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	SubmittedBy *string    `json:"submittedBy,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy  *string    `json:"approvedBy,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	RejectedBy  *string    `json:"rejectedBy,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	PaidBy      *string    `json:"paidBy,omitempty"`

	AuditFields
}

// ComputeTotal derives the request total from quantity, unit price and fee.
func ComputeTotal(quantity int64, unitPrice, fee decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Add(fee)
}

// RemainingAmount is the unpaid balance.
func (r *PurchaseRequest) RemainingAmount() decimal.Decimal {
	return r.TotalAmount.Sub(r.PaidAmount)
}

// IsAwaitingApproval reports whether the request currently holds a pending approver slot.
func (r *PurchaseRequest) IsAwaitingApproval() bool {
	return r.Status == StatusPendingApproval
}

// EligibleApprover reports whether the actor with the given role may decide the
// current node: either the exact assigned individual, or (when the node is
// role-targeted and unassigned) any holder of the target role.
func (r *PurchaseRequest) EligibleApprover(actorID, actorRole string) bool {
	if r.PendingApproverID != nil {
		return *r.PendingApproverID == actorID
	}
	if r.PendingApproverRole != nil {
		return *r.PendingApproverRole == actorRole
	}
	return false
}
