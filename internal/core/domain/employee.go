package domain

// Employee represents a member of the organization who can act on requests.
type Employee struct {
	EmployeeID   string `json:"employeeID"` // Primary key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         string `json:"role"` // e.g. DEPARTMENT_MANAGER, ADMIN, FINANCE
	IsActive     bool   `json:"isActive"`
	PasswordHash string `json:"-"`
	AuditFields
}
