package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	"github.com/opsledger/purchase_mgmt_app/internal/core/services"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
)

type WorkflowServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockWorkflowRepository
	mockCapability *MockCapabilityResolver
	service        portssvc.WorkflowSvcFacade
}

func (suite *WorkflowServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockWorkflowRepository)
	suite.mockCapability = new(MockCapabilityResolver)
	suite.service = services.NewWorkflowService(suite.mockRepo, suite.mockCapability)
}

func (suite *WorkflowServiceTestSuite) TestActiveConfig_ReturnsStored() {
	ctx := context.Background()
	stored := twoStepConfig()
	suite.mockRepo.On("LoadConfig", ctx).Return(stored, nil).Once()

	config, err := suite.service.ActiveConfig(ctx)

	suite.Require().NoError(err)
	suite.Equal(stored, config)
}

func (suite *WorkflowServiceTestSuite) TestActiveConfig_MissingRowYieldsDisabledConfig() {
	ctx := context.Background()
	suite.mockRepo.On("LoadConfig", ctx).Return(nil, apperrors.ErrNotFound).Once()

	config, err := suite.service.ActiveConfig(ctx)

	suite.Require().NoError(err)
	suite.False(config.Enabled)
	suite.Empty(config.Nodes)
	suite.Equal(int64(0), config.Version)
}

func validReplaceRequest() dto.ReplaceWorkflowConfigRequest {
	return dto.ReplaceWorkflowConfigRequest{
		Enabled: true,
		Version: 3,
		Nodes: []dto.WorkflowNodeRequest{
			{
				NodeID:       "mgr",
				NodeType:     "user_activity",
				ApproverType: "role",
				ApproverRole: strPtr("DEPARTMENT_MANAGER"),
				ApprovalMode: "serial",
			},
		},
	}
}

func (suite *WorkflowServiceTestSuite) TestReplaceConfig_Success() {
	ctx := context.Background()
	req := validReplaceRequest()

	suite.mockCapability.On("Check", mock.Anything, "admin-1", domain.CapManageWorkflow).Return(true, nil).Once()
	suite.mockRepo.On("ReplaceConfig", ctx, mock.MatchedBy(func(c domain.WorkflowConfig) bool {
		return c.Version == 4 && c.Enabled && len(c.Nodes) == 1
	}), int64(3)).Return(nil).Once()

	updated, err := suite.service.ReplaceConfig(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(int64(4), updated.Version)
	suite.Equal("admin-1", updated.UpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestReplaceConfig_MissingCapabilityForbidden() {
	req := validReplaceRequest()
	suite.mockCapability.On("Check", mock.Anything, "emp-1", domain.CapManageWorkflow).Return(false, nil).Once()

	_, err := suite.service.ReplaceConfig(context.Background(), req, "emp-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReplaceConfig", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestReplaceConfig_InvalidDefinitionRejected() {
	req := validReplaceRequest()
	req.Nodes[0].ApproverRole = nil // role node without a role

	suite.mockCapability.On("Check", mock.Anything, "admin-1", domain.CapManageWorkflow).Return(true, nil).Once()

	_, err := suite.service.ReplaceConfig(context.Background(), req, "admin-1")

	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReplaceConfig", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestReplaceConfig_StaleVersionConflicts() {
	ctx := context.Background()
	req := validReplaceRequest()

	suite.mockCapability.On("Check", mock.Anything, "admin-1", domain.CapManageWorkflow).Return(true, nil).Once()
	suite.mockRepo.On("ReplaceConfig", ctx, mock.Anything, int64(3)).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ReplaceConfig(ctx, req, "admin-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *WorkflowServiceTestSuite) TestReplaceConfig_Unauthenticated() {
	_, err := suite.service.ReplaceConfig(context.Background(), validReplaceRequest(), "")
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
