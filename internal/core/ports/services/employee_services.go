package services

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
)

// EmployeeSvcFacade resolves employees, e.g. for transfer-target validation.
type EmployeeSvcFacade interface {
	// GetEmployeeByID retrieves an employee summary or apperrors.ErrNotFound.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
}

// AuthSvcFacade authenticates employees and issues bearer tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed token response.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
