package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"

	employeesEmailKey      = "employees_email_key"
	employeesEmployeeIDKey = "employees_employee_id_key"
)

const employeeColumns = `id, employee_id, name, email, department, position, joining_date,
	total_leave_balance, leave_used, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeID, &emp.Name, &emp.Email, &emp.Department, &emp.Position, &emp.JoiningDate,
		&emp.TotalLeaveBalance, &emp.LeaveUsed, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

func scanEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// isUUID reports whether id can be compared against a UUID column. Anything else
// cannot match a row, and Postgres would reject it with invalid_text_representation.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func translateEmployeePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case employeesEmailKey:
			return employee.ErrEmailExists
		case employeesEmployeeIDKey:
			return employee.ErrEmployeeIDExists
		}
	}
	return err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !isUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(q.QueryRow(ctx, query, id))
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`
	return scanEmployee(q.QueryRow(ctx, query, employeeID))
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`
	return scanEmployee(q.QueryRow(ctx, query, email))
}

// ListByDepartment implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE UPPER(department) = UPPER($1)
		ORDER BY employee_id`

	rows, err := q.Query(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("list employees by department: %w", err)
	}
	return scanEmployees(rows)
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY department, employee_id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return scanEmployees(rows)
}

// Count implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, e.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return total, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	if newEmployee.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return employee.Employee{}, fmt.Errorf("generate employee id: %w", err)
		}
		newEmployee.ID = id.String()
	}

	query := `
		INSERT INTO employees (
			id, employee_id, name, email, department, position, joining_date,
			total_leave_balance, leave_used
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9
		)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.EmployeeID, newEmployee.Name, newEmployee.Email, newEmployee.Department,
		newEmployee.Position, newEmployee.JoiningDate, newEmployee.TotalLeaveBalance, newEmployee.LeaveUsed,
	))
	if err != nil {
		return employee.Employee{}, translateEmployeePgError(err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	if !isUUID(emp.ID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET employee_id = $2, name = $3, email = $4, department = $5, position = $6, joining_date = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID, emp.EmployeeID, emp.Name, emp.Email, emp.Department, emp.Position, emp.JoiningDate,
	))
	if err != nil {
		return employee.Employee{}, translateEmployeePgError(err)
	}
	return updated, nil
}

// AddLeaveUsed implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) AddLeaveUsed(ctx context.Context, employeeID string, days int) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET leave_used = leave_used + $2, updated_at = NOW()
		WHERE employee_id = $1
		RETURNING ` + employeeColumns

	return scanEmployee(q.QueryRow(ctx, query, employeeID, days))
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) (employee.Employee, error) {
	if !isUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	query := `DELETE FROM employees WHERE id = $1 RETURNING ` + employeeColumns
	return scanEmployee(q.QueryRow(ctx, query, id))
}
