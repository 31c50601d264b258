package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	// ListByDepartment matches the department case-insensitively.
	ListByDepartment(ctx context.Context, department string) ([]Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	AddLeaveUsed(ctx context.Context, employeeID string, days int) (Employee, error)
	Delete(ctx context.Context, id string) (Employee, error)
}

type DepartmentCounterRepository interface {
	// BumpMax stores max(current, seq) for the department, creating the row if needed.
	BumpMax(ctx context.Context, department string, seq int) error
}
