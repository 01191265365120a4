package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func roleNode(id, role string, condition *domain.NodeCondition) domain.WorkflowNode {
	return domain.WorkflowNode{
		NodeID:       id,
		NodeType:     domain.NodeUserActivity,
		ApproverType: domain.ApproverRole,
		ApproverRole: strPtr(role),
		ApprovalMode: domain.ModeSerial,
		Condition:    condition,
	}
}

func TestNodeCondition_Matches(t *testing.T) {
	tests := []struct {
		name      string
		condition *domain.NodeCondition
		org       domain.OrganizationType
		total     decimal.Decimal
		want      bool
	}{
		{
			name:      "nil condition matches everything",
			condition: nil,
			org:       domain.OrgSchool,
			total:     decimal.NewFromInt(1),
			want:      true,
		},
		{
			name:      "organization all matches both branches",
			condition: &domain.NodeCondition{Organization: domain.ConditionOrgAll},
			org:       domain.OrgCompany,
			total:     decimal.NewFromInt(100),
			want:      true,
		},
		{
			name:      "organization mismatch excludes",
			condition: &domain.NodeCondition{Organization: "school"},
			org:       domain.OrgCompany,
			total:     decimal.NewFromInt(100),
			want:      false,
		},
		{
			name:      "total below min excluded",
			condition: &domain.NodeCondition{MinAmount: decPtr(1000)},
			org:       domain.OrgSchool,
			total:     decimal.NewFromInt(999),
			want:      false,
		},
		{
			name:      "total at min boundary included",
			condition: &domain.NodeCondition{MinAmount: decPtr(1000)},
			org:       domain.OrgSchool,
			total:     decimal.NewFromInt(1000),
			want:      true,
		},
		{
			name:      "total at max boundary included",
			condition: &domain.NodeCondition{MaxAmount: decPtr(1000)},
			org:       domain.OrgSchool,
			total:     decimal.NewFromInt(1000),
			want:      true,
		},
		{
			name:      "total above max excluded",
			condition: &domain.NodeCondition{MaxAmount: decPtr(1000)},
			org:       domain.OrgSchool,
			total:     decimal.NewFromFloat(1000.01),
			want:      false,
		},
		{
			name:      "window with both bounds",
			condition: &domain.NodeCondition{MinAmount: decPtr(500), MaxAmount: decPtr(2000)},
			org:       domain.OrgSchool,
			total:     decimal.NewFromInt(1500),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.condition.Matches(tt.org, tt.total))
		})
	}
}

func TestWorkflowConfig_ApplicableNodes(t *testing.T) {
	config := domain.WorkflowConfig{
		Enabled: true,
		Nodes: []domain.WorkflowNode{
			{NodeID: "start", NodeType: domain.NodeConnection},
			roleNode("mgr", "DEPARTMENT_MANAGER", nil),
			roleNode("gm", "GENERAL_MANAGER", &domain.NodeCondition{MinAmount: decPtr(1000)}),
			{NodeID: "notify", NodeType: domain.NodeCirculate},
			roleNode("fin", "FINANCE", &domain.NodeCondition{Organization: "company"}),
		},
	}

	t.Run("small school request skips conditional nodes", func(t *testing.T) {
		nodes := config.ApplicableNodes(domain.OrgSchool, decimal.NewFromInt(500))
		require.Len(t, nodes, 1)
		assert.Equal(t, "mgr", nodes[0].NodeID)
		assert.Equal(t, 1, nodes[0].ConfigIndex)
	})

	t.Run("large company request passes all approval nodes", func(t *testing.T) {
		nodes := config.ApplicableNodes(domain.OrgCompany, decimal.NewFromInt(1500))
		require.Len(t, nodes, 3)
		assert.Equal(t, "mgr", nodes[0].NodeID)
		assert.Equal(t, "gm", nodes[1].NodeID)
		assert.Equal(t, "fin", nodes[2].NodeID)
		// ConfigIndex preserves positions in the full node list.
		assert.Equal(t, []int{1, 2, 4}, []int{nodes[0].ConfigIndex, nodes[1].ConfigIndex, nodes[2].ConfigIndex})
	})

	t.Run("resolution is deterministic", func(t *testing.T) {
		first := config.ApplicableNodes(domain.OrgCompany, decimal.NewFromInt(1500))
		second := config.ApplicableNodes(domain.OrgCompany, decimal.NewFromInt(1500))
		assert.Equal(t, first, second)
	})

	t.Run("non-approval markers never appear", func(t *testing.T) {
		nodes := config.ApplicableNodes(domain.OrgCompany, decimal.NewFromInt(10000))
		for _, n := range nodes {
			assert.Equal(t, domain.NodeUserActivity, n.NodeType)
		}
	})
}

func TestWorkflowConfig_FirstAndNextApplicableNode(t *testing.T) {
	config := domain.WorkflowConfig{
		Enabled: true,
		Nodes: []domain.WorkflowNode{
			roleNode("mgr", "DEPARTMENT_MANAGER", nil),
			roleNode("gm", "GENERAL_MANAGER", &domain.NodeCondition{MinAmount: decPtr(1000)}),
		},
	}

	t.Run("first node for small amount", func(t *testing.T) {
		node := config.FirstApplicableNode(domain.OrgSchool, decimal.NewFromInt(200))
		require.NotNil(t, node)
		assert.Equal(t, "mgr", node.NodeID)
	})

	t.Run("next after first ends approval for small amount", func(t *testing.T) {
		node := config.NextApplicableNode(domain.OrgSchool, decimal.NewFromInt(200), 0)
		assert.Nil(t, node)
	})

	t.Run("next after first reaches gm for large amount", func(t *testing.T) {
		node := config.NextApplicableNode(domain.OrgSchool, decimal.NewFromInt(1500), 0)
		require.NotNil(t, node)
		assert.Equal(t, "gm", node.NodeID)
		assert.Equal(t, 1, node.ConfigIndex)
	})

	t.Run("empty config has no first node", func(t *testing.T) {
		empty := domain.WorkflowConfig{}
		assert.Nil(t, empty.FirstApplicableNode(domain.OrgSchool, decimal.NewFromInt(1)))
	})
}

func TestWorkflowConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []domain.WorkflowNode
		wantErr string
	}{
		{
			name:  "valid config",
			nodes: []domain.WorkflowNode{roleNode("mgr", "DEPARTMENT_MANAGER", nil)},
		},
		{
			name:    "missing node id",
			nodes:   []domain.WorkflowNode{{NodeType: domain.NodeUserActivity}},
			wantErr: "node id is required",
		},
		{
			name:    "unknown node type",
			nodes:   []domain.WorkflowNode{{NodeID: "x", NodeType: "teleport"}},
			wantErr: "unknown node type",
		},
		{
			name: "role node without role",
			nodes: []domain.WorkflowNode{{
				NodeID:       "x",
				NodeType:     domain.NodeUserActivity,
				ApproverType: domain.ApproverRole,
				ApprovalMode: domain.ModeSerial,
			}},
			wantErr: "requires an approver role",
		},
		{
			name: "user node without user id",
			nodes: []domain.WorkflowNode{{
				NodeID:       "x",
				NodeType:     domain.NodeUserActivity,
				ApproverType: domain.ApproverUser,
				ApprovalMode: domain.ModeSerial,
			}},
			wantErr: "requires an approver user id",
		},
		{
			name: "unknown approval mode",
			nodes: []domain.WorkflowNode{{
				NodeID:       "x",
				NodeType:     domain.NodeUserActivity,
				ApproverType: domain.ApproverRole,
				ApproverRole: strPtr("FINANCE"),
				ApprovalMode: "parallel",
			}},
			wantErr: "unknown approval mode",
		},
		{
			name: "negative timeout",
			nodes: []domain.WorkflowNode{{
				NodeID:       "x",
				NodeType:     domain.NodeUserActivity,
				ApproverType: domain.ApproverRole,
				ApproverRole: strPtr("FINANCE"),
				ApprovalMode: domain.ModeSerial,
				TimeoutHours: -1,
			}},
			wantErr: "timeout hours must not be negative",
		},
		{
			name:    "min amount above max amount",
			nodes:   []domain.WorkflowNode{roleNode("x", "FINANCE", &domain.NodeCondition{MinAmount: decPtr(2000), MaxAmount: decPtr(1000)})},
			wantErr: "min amount exceeds max amount",
		},
		{
			name:    "unknown condition organization",
			nodes:   []domain.WorkflowNode{roleNode("x", "FINANCE", &domain.NodeCondition{Organization: "charity"})},
			wantErr: "unknown condition organization",
		},
		{
			name: "inert markers need no approver",
			nodes: []domain.WorkflowNode{
				{NodeID: "start", NodeType: domain.NodeConnection},
				{NodeID: "notify", NodeType: domain.NodeCirculate},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := domain.WorkflowConfig{Nodes: tt.nodes}
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
