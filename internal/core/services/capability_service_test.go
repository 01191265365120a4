package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	"github.com/opsledger/purchase_mgmt_app/internal/core/services"
)

func TestCapabilityService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("active role holder passes", func(t *testing.T) {
		employeeRepo := new(MockEmployeeRepository)
		capabilityRepo := new(MockCapabilityRepository)
		svc := services.NewCapabilityService(employeeRepo, capabilityRepo)

		employeeRepo.On("FindEmployeeByID", ctx, "fin-1").Return(activeEmployee("fin-1", "FINANCE"), nil).Once()
		capabilityRepo.On("ListCapabilitiesByRole", ctx, "FINANCE").
			Return([]domain.Capability{domain.CapApproveRequest, domain.CapPayRequest}, nil).Once()

		ok, err := svc.Check(ctx, "fin-1", domain.CapPayRequest)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing grant fails closed", func(t *testing.T) {
		employeeRepo := new(MockEmployeeRepository)
		capabilityRepo := new(MockCapabilityRepository)
		svc := services.NewCapabilityService(employeeRepo, capabilityRepo)

		employeeRepo.On("FindEmployeeByID", ctx, "emp-1").Return(activeEmployee("emp-1", "EMPLOYEE"), nil).Once()
		capabilityRepo.On("ListCapabilitiesByRole", ctx, "EMPLOYEE").
			Return([]domain.Capability{domain.CapSubmitRequest}, nil).Once()

		ok, err := svc.Check(ctx, "emp-1", domain.CapApproveRequest)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown actor holds nothing", func(t *testing.T) {
		employeeRepo := new(MockEmployeeRepository)
		capabilityRepo := new(MockCapabilityRepository)
		svc := services.NewCapabilityService(employeeRepo, capabilityRepo)

		employeeRepo.On("FindEmployeeByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

		ok, err := svc.Check(ctx, "ghost", domain.CapSubmitRequest)
		require.NoError(t, err)
		assert.False(t, ok)
		capabilityRepo.AssertNotCalled(t, "ListCapabilitiesByRole", mock.Anything, mock.Anything)
	})

	t.Run("inactive employee holds nothing", func(t *testing.T) {
		employeeRepo := new(MockEmployeeRepository)
		capabilityRepo := new(MockCapabilityRepository)
		svc := services.NewCapabilityService(employeeRepo, capabilityRepo)

		inactive := &domain.Employee{EmployeeID: "emp-1", Role: "FINANCE", IsActive: false}
		employeeRepo.On("FindEmployeeByID", ctx, "emp-1").Return(inactive, nil).Once()

		ok, err := svc.Check(ctx, "emp-1", domain.CapPayRequest)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("storage errors propagate", func(t *testing.T) {
		employeeRepo := new(MockEmployeeRepository)
		capabilityRepo := new(MockCapabilityRepository)
		svc := services.NewCapabilityService(employeeRepo, capabilityRepo)

		employeeRepo.On("FindEmployeeByID", ctx, "emp-1").Return(nil, errors.New("boom")).Once()

		_, err := svc.Check(ctx, "emp-1", domain.CapPayRequest)
		assert.Error(t, err)
	})
}

func TestCapabilityService_RoleAllows(t *testing.T) {
	ctx := context.Background()
	employeeRepo := new(MockEmployeeRepository)
	capabilityRepo := new(MockCapabilityRepository)
	svc := services.NewCapabilityService(employeeRepo, capabilityRepo)

	capabilityRepo.On("ListCapabilitiesByRole", ctx, "WAREHOUSE").
		Return([]domain.Capability{domain.CapManageInbound}, nil)

	ok, err := svc.RoleAllows(ctx, "WAREHOUSE", domain.CapManageInbound)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.RoleAllows(ctx, "WAREHOUSE", domain.CapApproveRequest)
	require.NoError(t, err)
	assert.False(t, ok)
}
