package dto

import "github.com/opsledger/purchase_mgmt_app/internal/core/domain"

// EmployeeSummaryResponse is the outward shape of an employee, e.g. for
// transfer-target pickers.
type EmployeeSummaryResponse struct {
	EmployeeID string `json:"employeeID"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsActive   bool   `json:"isActive"`
}

// ToEmployeeSummaryResponse converts a domain employee.
func ToEmployeeSummaryResponse(e *domain.Employee) EmployeeSummaryResponse {
	return EmployeeSummaryResponse{
		EmployeeID: e.EmployeeID,
		Username:   e.Username,
		Name:       e.Name,
		Role:       e.Role,
		IsActive:   e.IsActive,
	}
}
