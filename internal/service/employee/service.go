package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	serializer       *database.Serializer
	employeeRepo     employee.EmployeeRepository
	counterRepo      employee.DepartmentCounterRepository
	leaveRequestRepo leave.LeaveRequestRepository
	defaultBalance   int
}

func NewEmployeeService(
	serializer *database.Serializer,
	employeeRepo employee.EmployeeRepository,
	counterRepo employee.DepartmentCounterRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	defaultBalance int,
) employee.EmployeeService {
	if defaultBalance <= 0 {
		defaultBalance = employee.DefaultTotalLeaveBalance
	}
	return &EmployeeServiceImpl{
		serializer:       serializer,
		employeeRepo:     employeeRepo,
		counterRepo:      counterRepo,
		leaveRequestRepo: leaveRequestRepo,
		defaultBalance:   defaultBalance,
	}
}

// allocateEmployeeID must run with the department scope held.
func (s *EmployeeServiceImpl) allocateEmployeeID(ctx context.Context, department string) (string, error) {
	members, err := s.employeeRepo.ListByDepartment(ctx, department)
	if err != nil {
		return "", fmt.Errorf("failed to list employees in department %s: %w", department, err)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.EmployeeID)
	}
	seq := NextSequence(ids)

	if err := s.counterRepo.BumpMax(ctx, DepartmentPrefix(department), seq); err != nil {
		return "", fmt.Errorf("failed to update department counter: %w", err)
	}

	return FormatEmployeeID(department, seq), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	joiningDate, _ := validator.ParseDate(req.JoiningDate)
	department := strings.TrimSpace(req.Department)
	email := validator.NormalizeEmail(req.Email)

	var created employee.Employee
	err := s.serializer.Do(ctx, func(ctx context.Context) error {
		_, err := s.employeeRepo.GetByEmail(ctx, email)
		if err == nil {
			return employee.ErrEmailExists
		}
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}

		employeeID, err := s.allocateEmployeeID(ctx, department)
		if err != nil {
			return err
		}

		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			EmployeeID:        employeeID,
			Name:              strings.TrimSpace(req.Name),
			Email:             email,
			Department:        department,
			Position:          strings.TrimSpace(req.Position),
			JoiningDate:       joiningDate,
			TotalLeaveBalance: s.defaultBalance,
			LeaveUsed:         0,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	}, database.DepartmentScope(department))
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.EmployeeID, "department", created.Department)
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var (
		lockedID string
		updated  employee.Employee
	)
	err := s.serializer.DoScoped(ctx, func(ctx context.Context) ([]string, error) {
		current, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		lockedID = current.EmployeeID

		scopes := []string{database.EmployeeScope(lockedID)}
		if req.Department != nil {
			scopes = append(scopes, database.DepartmentScope(*req.Department))
		}
		return scopes, nil
	}, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if emp.EmployeeID != lockedID {
			return database.ErrScopeMoved
		}
		oldEmployeeID := emp.EmployeeID

		if req.Name != nil {
			emp.Name = strings.TrimSpace(*req.Name)
		}
		if req.Position != nil {
			emp.Position = strings.TrimSpace(*req.Position)
		}
		if req.JoiningDate != nil {
			emp.JoiningDate, _ = validator.ParseDate(*req.JoiningDate)
		}
		if req.Email != nil {
			email := validator.NormalizeEmail(*req.Email)
			if email != emp.Email {
				owner, err := s.employeeRepo.GetByEmail(ctx, email)
				switch {
				case err == nil && owner.ID != emp.ID:
					return employee.ErrEmailExists
				case err != nil && !errors.Is(err, employee.ErrEmployeeNotFound):
					return fmt.Errorf("failed to check email: %w", err)
				}
				emp.Email = email
			}
		}

		if req.Department != nil {
			department := strings.TrimSpace(*req.Department)
			if !strings.EqualFold(department, emp.Department) {
				emp.EmployeeID, err = s.allocateEmployeeID(ctx, department)
				if err != nil {
					return err
				}
			}
			emp.Department = department
		}

		updated, err = s.employeeRepo.Update(ctx, emp)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		if updated.EmployeeID != oldEmployeeID {
			moved, err := s.leaveRequestRepo.ReassignEmployee(ctx, oldEmployeeID, updated.EmployeeID)
			if err != nil {
				return fmt.Errorf("failed to move leave requests: %w", err)
			}
			slog.Info("Employee ID reassigned",
				"old_employee_id", oldEmployeeID,
				"new_employee_id", updated.EmployeeID,
				"leave_requests_moved", moved,
			)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) (employee.DeleteEmployeeResponse, error) {
	var (
		lockedID string
		resp     employee.DeleteEmployeeResponse
	)
	err := s.serializer.DoScoped(ctx, func(ctx context.Context) ([]string, error) {
		current, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		lockedID = current.EmployeeID
		return []string{database.EmployeeScope(lockedID)}, nil
	}, func(ctx context.Context) error {
		deleted, err := s.employeeRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted.EmployeeID != lockedID {
			return database.ErrScopeMoved
		}

		removed, err := s.leaveRequestRepo.DeleteByEmployeeID(ctx, deleted.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to delete leave requests: %w", err)
		}

		resp = employee.DeleteEmployeeResponse{
			ID:                   deleted.ID,
			EmployeeID:           deleted.EmployeeID,
			DeletedLeaveRequests: removed,
		}
		return nil
	})
	if err != nil {
		return employee.DeleteEmployeeResponse{}, err
	}

	slog.Info("Employee deleted", "employee_id", resp.EmployeeID, "leave_requests_deleted", resp.DeletedLeaveRequests)
	return resp, nil
}
