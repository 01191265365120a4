package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
)

// capabilityService answers the permission gate from the role catalog: an
// actor's capabilities are the capabilities granted to their role. Inactive
// employees hold nothing.
type capabilityService struct {
	employeeRepo   portsrepo.EmployeeRepository
	capabilityRepo portsrepo.CapabilityRepository
}

// NewCapabilityService creates a new capability resolver.
func NewCapabilityService(employeeRepo portsrepo.EmployeeRepository, capabilityRepo portsrepo.CapabilityRepository) portssvc.CapabilityResolver {
	return &capabilityService{
		employeeRepo:   employeeRepo,
		capabilityRepo: capabilityRepo,
	}
}

var _ portssvc.CapabilityResolver = (*capabilityService)(nil)

// Check reports whether the actor holds the capability.
func (s *capabilityService) Check(ctx context.Context, actorID string, capability domain.Capability) (bool, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve actor %s: %w", actorID, err)
	}
	if !employee.IsActive {
		return false, nil
	}
	return s.RoleAllows(ctx, employee.Role, capability)
}

// RoleAllows reports whether a role grants the capability.
func (s *capabilityService) RoleAllows(ctx context.Context, role string, capability domain.Capability) (bool, error) {
	capabilities, err := s.capabilityRepo.ListCapabilitiesByRole(ctx, role)
	if err != nil {
		return false, fmt.Errorf("failed to list capabilities for role %s: %w", role, err)
	}
	for _, c := range capabilities {
		if c == capability {
			return true, nil
		}
	}
	return false, nil
}
