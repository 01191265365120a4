package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NodeType distinguishes real approval steps from inert graph markers.
type NodeType string

const (
	NodeUserActivity   NodeType = "user_activity" // real approval node
	NodeSystemActivity NodeType = "system_activity"
	NodeSubProcess     NodeType = "sub_process"
	NodeConnection     NodeType = "connection"
	NodeCirculate      NodeType = "circulate"
)

// KnownNodeType reports whether t is a recognized node type.
func KnownNodeType(t NodeType) bool {
	switch t {
	case NodeUserActivity, NodeSystemActivity, NodeSubProcess, NodeConnection, NodeCirculate:
		return true
	}
	return false
}

// ApproverType selects how a node's approver is resolved.
type ApproverType string

const (
	ApproverRole ApproverType = "role"
	ApproverUser ApproverType = "user"
)

// ApprovalMode selects the decision semantics for a node.
type ApprovalMode string

const (
	// ModeSerial traverses nodes in order, one decision per node.
	ModeSerial ApprovalMode = "serial"
	// ModeAny closes the node on the first eligible approver's decision.
	ModeAny ApprovalMode = "any"
)

// ConditionOrgAll matches requests of every organization branch.
const ConditionOrgAll = "all"

// NodeCondition restricts when a node applies to a request.
type NodeCondition struct {
	MinAmount *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`
	// Organization is "school", "company" or "all" (empty means all).
	Organization string `json:"organization,omitempty"`
}

// Matches reports whether a request with the given organization and total
// falls inside the condition window.
func (c *NodeCondition) Matches(org OrganizationType, total decimal.Decimal) bool {
	if c == nil {
		return true
	}
	if c.Organization != "" && c.Organization != ConditionOrgAll && c.Organization != string(org) {
		return false
	}
	if c.MinAmount != nil && total.LessThan(*c.MinAmount) {
		return false
	}
	if c.MaxAmount != nil && total.GreaterThan(*c.MaxAmount) {
		return false
	}
	return true
}

// WorkflowNode is one configured step in the routing definition.
type WorkflowNode struct {
	NodeID         string         `json:"nodeID"`
	Name           string         `json:"name"`
	NodeType       NodeType       `json:"nodeType"`
	ApproverType   ApproverType   `json:"approverType,omitempty"`
	ApproverRole   *string        `json:"approverRole,omitempty"`
	ApproverUserID *string        `json:"approverUserID,omitempty"`
	ApprovalMode   ApprovalMode   `json:"approvalMode,omitempty"`
	TimeoutHours   int            `json:"timeoutHours,omitempty"`
	RequireComment bool           `json:"requireComment,omitempty"`
	Condition      *NodeCondition `json:"condition,omitempty"`
}

// WorkflowConfig is the versioned, singleton-per-deployment routing definition.
type WorkflowConfig struct {
	Enabled   bool           `json:"enabled"`
	Version   int64          `json:"version"`
	Nodes     []WorkflowNode `json:"nodes"`
	UpdatedAt time.Time      `json:"updatedAt"`
	UpdatedBy string         `json:"updatedBy"`
}

// ResolvedNode is an applicable approval node annotated with its position in
// the full configured list, so advancement survives config edits mid-flight.
type ResolvedNode struct {
	WorkflowNode
	// ConfigIndex is the node's index in WorkflowConfig.Nodes.
	ConfigIndex int
}

// ApplicableNodes resolves the ordered sequence of approval nodes that apply to
// a request: non-approval markers are dropped, then nodes whose organization or
// amount condition excludes the request. Configuration order is preserved.
// The function is pure; calling it twice with the same inputs yields the same list.
func (w *WorkflowConfig) ApplicableNodes(org OrganizationType, total decimal.Decimal) []ResolvedNode {
	resolved := make([]ResolvedNode, 0, len(w.Nodes))
	for i, node := range w.Nodes {
		if node.NodeType != NodeUserActivity {
			continue
		}
		if !node.Condition.Matches(org, total) {
			continue
		}
		resolved = append(resolved, ResolvedNode{WorkflowNode: node, ConfigIndex: i})
	}
	return resolved
}

// FirstApplicableNode returns the first applicable node, or nil when the
// filtered sequence is empty.
func (w *WorkflowConfig) FirstApplicableNode(org OrganizationType, total decimal.Decimal) *ResolvedNode {
	nodes := w.ApplicableNodes(org, total)
	if len(nodes) == 0 {
		return nil
	}
	return &nodes[0]
}

// NextApplicableNode returns the first applicable node positioned after
// afterConfigIndex in the configured list, or nil when none remains.
func (w *WorkflowConfig) NextApplicableNode(org OrganizationType, total decimal.Decimal, afterConfigIndex int) *ResolvedNode {
	for _, node := range w.ApplicableNodes(org, total) {
		if node.ConfigIndex > afterConfigIndex {
			n := node
			return &n
		}
	}
	return nil
}

// Validate checks the configuration invariants before a replace is accepted.
func (w *WorkflowConfig) Validate() error {
	for i, node := range w.Nodes {
		if node.NodeID == "" {
			return fmt.Errorf("node %d: node id is required", i)
		}
		if !KnownNodeType(node.NodeType) {
			return fmt.Errorf("node %q: unknown node type %q", node.NodeID, node.NodeType)
		}
		if node.TimeoutHours < 0 {
			return fmt.Errorf("node %q: timeout hours must not be negative", node.NodeID)
		}
		if node.NodeType != NodeUserActivity {
			continue
		}
		switch node.ApproverType {
		case ApproverRole:
			if node.ApproverRole == nil || *node.ApproverRole == "" {
				return fmt.Errorf("node %q: role-targeted node requires an approver role", node.NodeID)
			}
		case ApproverUser:
			if node.ApproverUserID == nil || *node.ApproverUserID == "" {
				return fmt.Errorf("node %q: user-targeted node requires an approver user id", node.NodeID)
			}
		default:
			return fmt.Errorf("node %q: unknown approver type %q", node.NodeID, node.ApproverType)
		}
		if node.ApprovalMode != ModeSerial && node.ApprovalMode != ModeAny {
			return fmt.Errorf("node %q: unknown approval mode %q", node.NodeID, node.ApprovalMode)
		}
		if c := node.Condition; c != nil {
			if c.Organization != "" && c.Organization != ConditionOrgAll &&
				c.Organization != string(OrgSchool) && c.Organization != string(OrgCompany) {
				return fmt.Errorf("node %q: unknown condition organization %q", node.NodeID, c.Organization)
			}
			if c.MinAmount != nil && c.MinAmount.IsNegative() {
				return fmt.Errorf("node %q: condition min amount must not be negative", node.NodeID)
			}
			if c.MinAmount != nil && c.MaxAmount != nil && c.MinAmount.GreaterThan(*c.MaxAmount) {
				return fmt.Errorf("node %q: condition min amount exceeds max amount", node.NodeID)
			}
		}
	}
	return nil
}
