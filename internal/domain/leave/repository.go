package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	// FindOverlapping returns nil when no request in statuses overlaps [start, end].
	FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, statuses []LeaveRequestStatus) (*LeaveRequest, error)
	// UpdateStatus moves a request from one status to another and fails with
	// ErrLeaveRequestAlreadyProcessed when the stored status is not from.
	UpdateStatus(ctx context.Context, id string, from, to LeaveRequestStatus) (LeaveRequest, error)
	ReassignEmployee(ctx context.Context, oldEmployeeID, newEmployeeID string) (int64, error)
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
	CountByStatus(ctx context.Context, status LeaveRequestStatus) (int64, error)
}
