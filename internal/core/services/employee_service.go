package services

import (
	"context"
	"fmt"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
)

// employeeService resolves employee records.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepository
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepository) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// GetEmployeeByID retrieves an employee by id.
func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	return employee, nil
}
