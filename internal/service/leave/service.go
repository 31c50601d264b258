package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type LeaveServiceImpl struct {
	serializer       *database.Serializer
	employeeRepo     employee.EmployeeRepository
	leaveRequestRepo leave.LeaveRequestRepository
	now              func() time.Time
}

func NewLeaveService(
	serializer *database.Serializer,
	employeeRepo employee.EmployeeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		serializer:       serializer,
		employeeRepo:     employeeRepo,
		leaveRequestRepo: leaveRequestRepo,
		now:              time.Now,
	}
}

// ApplyLeave implements leave.LeaveService.
//
// Checks run in a fixed order: employee exists, date order, joining date,
// duration, balance, overlap. All of them see the same snapshot because the
// employee scope is held until the request is stored.
func (s *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	employeeID := strings.TrimSpace(req.EmployeeID)
	startDate, _ := validator.ParseDate(req.StartDate)
	endDate, _ := validator.ParseDate(req.EndDate)

	var created leave.LeaveRequest
	err := s.serializer.Do(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID)
		if err != nil {
			return err
		}

		if endDate.Before(startDate) {
			return leave.ErrEndBeforeStart
		}
		if startDate.Before(emp.JoiningDate) {
			return leave.ErrBeforeJoiningDate
		}

		days := leave.DurationInDays(startDate, endDate)
		if days <= 0 {
			return leave.ErrInvalidDuration
		}

		balance := leave.NewBalance(emp.EmployeeID, emp.TotalLeaveBalance, emp.LeaveUsed)
		if days > balance.LeaveRemaining {
			return leave.ErrInsufficientBalance
		}

		overlapping, err := s.leaveRequestRepo.FindOverlapping(ctx, emp.EmployeeID, startDate, endDate, leave.ActiveStatuses)
		if err != nil {
			return err
		}
		if overlapping != nil {
			slog.Debug("Leave request overlaps",
				"employee_id", emp.EmployeeID,
				"existing_request_id", overlapping.ID,
			)
			return leave.ErrOverlappingLeave
		}

		created, err = s.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
			EmployeeID: emp.EmployeeID,
			StartDate:  startDate,
			EndDate:    endDate,
			Status:     leave.LeaveRequestStatusPending,
			LeaveType:  strings.TrimSpace(req.LeaveType),
			AppliedOn:  s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	}, database.EmployeeScope(employeeID))
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request submitted",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"days", created.Days(),
	)
	return leave.NewLeaveRequestResponse(created), nil
}

// UpdateLeaveStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateLeaveStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var (
		lockedID string
		updated  leave.LeaveRequest
	)
	err := s.serializer.DoScoped(ctx, func(ctx context.Context) ([]string, error) {
		current, err := s.leaveRequestRepo.GetByID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		lockedID = current.EmployeeID
		return []string{database.EmployeeScope(lockedID)}, nil
	}, func(ctx context.Context) error {
		request, err := s.leaveRequestRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if request.EmployeeID != lockedID {
			return database.ErrScopeMoved
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		updated, err = s.leaveRequestRepo.UpdateStatus(ctx, request.ID, leave.LeaveRequestStatusPending, req.Status)
		if err != nil {
			return err
		}

		if req.Status == leave.LeaveRequestStatusApproved {
			if _, err := s.employeeRepo.AddLeaveUsed(ctx, updated.EmployeeID, updated.Days()); err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					return err
				}
				return fmt.Errorf("failed to charge leave balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request processed",
		"request_id", updated.ID,
		"employee_id", updated.EmployeeID,
		"status", updated.Status,
	)
	return leave.NewLeaveRequestResponse(updated), nil
}

// GetLeaveBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	emp, err := s.employeeRepo.GetByEmployeeID(ctx, strings.TrimSpace(employeeID))
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.NewBalanceResponse(leave.NewBalance(emp.EmployeeID, emp.TotalLeaveBalance, emp.LeaveUsed)), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.leaveRequestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.leaveRequestRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses, nil
}

// GetStats implements leave.LeaveService.
func (s *LeaveServiceImpl) GetStats(ctx context.Context) (leave.StatsResponse, error) {
	var stats leave.StatsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.employeeRepo.Count(gctx)
		stats.TotalEmployees = n
		return err
	})
	g.Go(func() error {
		n, err := s.leaveRequestRepo.CountByStatus(gctx, leave.LeaveRequestStatusPending)
		stats.PendingRequests = n
		return err
	})
	g.Go(func() error {
		n, err := s.leaveRequestRepo.CountByStatus(gctx, leave.LeaveRequestStatusApproved)
		stats.ApprovedRequests = n
		return err
	})
	g.Go(func() error {
		n, err := s.leaveRequestRepo.CountByStatus(gctx, leave.LeaveRequestStatusRejected)
		stats.RejectedRequests = n
		return err
	})

	if err := g.Wait(); err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to collect leave stats: %w", err)
	}
	return stats, nil
}
