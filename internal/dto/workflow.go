package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// WorkflowNodeRequest is one node in a config replace payload.
type WorkflowNodeRequest struct {
	NodeID         string  `json:"nodeID" binding:"required"`
	Name           string  `json:"name"`
	NodeType       string  `json:"nodeType" binding:"required,oneof=user_activity system_activity sub_process connection circulate"`
	ApproverType   string  `json:"approverType" binding:"omitempty,oneof=role user"`
	ApproverRole   *string `json:"approverRole"`
	ApproverUserID *string `json:"approverUserID"`
	ApprovalMode   string  `json:"approvalMode" binding:"omitempty,oneof=serial any"`
	TimeoutHours   int     `json:"timeoutHours" binding:"omitempty,gte=0"`
	RequireComment bool    `json:"requireComment"`

	MinAmount    *decimal.Decimal `json:"minAmount"`
	MaxAmount    *decimal.Decimal `json:"maxAmount"`
	Organization string           `json:"organization" binding:"omitempty,oneof=all school company"`
}

// ReplaceWorkflowConfigRequest replaces the whole routing definition; there is
// no partial patch.
type ReplaceWorkflowConfigRequest struct {
	Enabled bool                  `json:"enabled"`
	Version int64                 `json:"version" binding:"gte=0"`
	Nodes   []WorkflowNodeRequest `json:"nodes" binding:"required,dive"`
}

// WorkflowConfigResponse is the outward shape of the routing definition.
type WorkflowConfigResponse struct {
	Enabled   bool                  `json:"enabled"`
	Version   int64                 `json:"version"`
	Nodes     []domain.WorkflowNode `json:"nodes"`
	UpdatedAt time.Time             `json:"updatedAt"`
	UpdatedBy string                `json:"updatedBy"`
}

// ToWorkflowNode converts a node request into its domain form.
func (n WorkflowNodeRequest) ToWorkflowNode() domain.WorkflowNode {
	node := domain.WorkflowNode{
		NodeID:         n.NodeID,
		Name:           n.Name,
		NodeType:       domain.NodeType(n.NodeType),
		ApproverType:   domain.ApproverType(n.ApproverType),
		ApproverRole:   n.ApproverRole,
		ApproverUserID: n.ApproverUserID,
		ApprovalMode:   domain.ApprovalMode(n.ApprovalMode),
		TimeoutHours:   n.TimeoutHours,
		RequireComment: n.RequireComment,
	}
	if n.MinAmount != nil || n.MaxAmount != nil || n.Organization != "" {
		node.Condition = &domain.NodeCondition{
			MinAmount:    n.MinAmount,
			MaxAmount:    n.MaxAmount,
			Organization: n.Organization,
		}
	}
	return node
}

// ToWorkflowConfigResponse converts a domain config to its response DTO.
func ToWorkflowConfigResponse(c *domain.WorkflowConfig) WorkflowConfigResponse {
	return WorkflowConfigResponse{
		Enabled:   c.Enabled,
		Version:   c.Version,
		Nodes:     c.Nodes,
		UpdatedAt: c.UpdatedAt,
		UpdatedBy: c.UpdatedBy,
	}
}
