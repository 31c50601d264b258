package leave

import (
	"context"
)

type LeaveService interface {
	ApplyLeave(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	UpdateLeaveStatus(ctx context.Context, req UpdateLeaveStatusRequest) (LeaveRequestResponse, error)
	GetLeaveBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	GetStats(ctx context.Context) (StatsResponse, error)
}
