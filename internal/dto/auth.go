package dto

// LoginRequest authenticates an employee by username and password.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token      string `json:"token"`
	EmployeeID string `json:"employeeID"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}
