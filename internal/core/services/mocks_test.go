package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
)

// MockRequestRepository is a mock type for the RequestRepositoryFacade interface
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) SaveRequest(ctx context.Context, request *domain.PurchaseRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseRequest), args.Error(1)
}

func (m *MockRequestRepository) ListRequests(ctx context.Context, status domain.RequestStatus, limit, offset int) ([]domain.PurchaseRequest, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseRequest), args.Error(1)
}

func (m *MockRequestRepository) ApplyTransition(ctx context.Context, request domain.PurchaseRequest, expectedStatus domain.RequestStatus, expectedVersion int64, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, request, expectedStatus, expectedVersion, entry)
	return args.Error(0)
}

// MockWorkflowRepository is a mock type for the WorkflowConfigRepository interface
type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) LoadConfig(ctx context.Context) (*domain.WorkflowConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkflowConfig), args.Error(1)
}

func (m *MockWorkflowRepository) ReplaceConfig(ctx context.Context, config domain.WorkflowConfig, expectedVersion int64) error {
	args := m.Called(ctx, config, expectedVersion)
	return args.Error(0)
}

// MockAuditRepository is a mock type for the AuditLogReader interface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) ListEntriesByRequest(ctx context.Context, requestID string, ascending bool) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, requestID, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// MockWorkflowSvc is a mock type for the WorkflowSvcFacade interface
type MockWorkflowSvc struct {
	mock.Mock
}

func (m *MockWorkflowSvc) ActiveConfig(ctx context.Context) (*domain.WorkflowConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkflowConfig), args.Error(1)
}

func (m *MockWorkflowSvc) ReplaceConfig(ctx context.Context, req dto.ReplaceWorkflowConfigRequest, actorID string) (*domain.WorkflowConfig, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkflowConfig), args.Error(1)
}

// MockEmployeeSvc is a mock type for the EmployeeSvcFacade interface
type MockEmployeeSvc struct {
	mock.Mock
}

func (m *MockEmployeeSvc) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

// MockCapabilityResolver is a mock type for the CapabilityResolver interface
type MockCapabilityResolver struct {
	mock.Mock
}

func (m *MockCapabilityResolver) Check(ctx context.Context, actorID string, capability domain.Capability) (bool, error) {
	args := m.Called(ctx, actorID, capability)
	return args.Bool(0), args.Error(1)
}

func (m *MockCapabilityResolver) RoleAllows(ctx context.Context, role string, capability domain.Capability) (bool, error) {
	args := m.Called(ctx, role, capability)
	return args.Bool(0), args.Error(1)
}

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event domain.Action, request *domain.PurchaseRequest) {
	m.Called(ctx, event, request)
}

// MockEmployeeRepository is a mock type for the EmployeeRepository interface
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

// MockCapabilityRepository is a mock type for the CapabilityRepository interface
type MockCapabilityRepository struct {
	mock.Mock
}

func (m *MockCapabilityRepository) ListCapabilitiesByRole(ctx context.Context, role string) ([]domain.Capability, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Capability), args.Error(1)
}
