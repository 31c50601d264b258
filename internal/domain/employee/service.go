package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee registers an employee and allocates its department-scoped ID
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by internal ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists every employee
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// UpdateEmployee applies a partial update; a department change re-allocates the employee ID
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee and every leave request that references it
	DeleteEmployee(ctx context.Context, id string) (DeleteEmployeeResponse, error)
}
