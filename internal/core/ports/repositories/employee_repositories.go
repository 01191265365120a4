package repositories

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// EmployeeRepository defines read operations for employee data.
type EmployeeRepository interface {
	// FindEmployeeByID retrieves an employee by id.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByUsername retrieves an employee by login name.
	FindEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error)
}

// CapabilityRepository reads the permission catalog.
type CapabilityRepository interface {
	// ListCapabilitiesByRole returns the capabilities granted to a role.
	ListCapabilitiesByRole(ctx context.Context, role string) ([]domain.Capability, error)
}
