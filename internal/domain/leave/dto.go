package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
)

// MaxLeaveTypeLength is the leave_requests.leave_type column limit.
const MaxLeaveTypeLength = 64

type ApplyLeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	LeaveType  string `json:"leave_type"`
}

// Validate checks presence and format of every field. Date ordering is checked here
// as well, so a reversed range is rejected before any store lookup.
func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	start, startOK := validator.ParseDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date is required"})
	} else if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}

	end, endOK := validator.ParseDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date is required"})
	} else if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type is required"})
	} else if !validator.MaxLength(r.LeaveType, MaxLeaveTypeLength) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type must be at most 64 characters"})
	}

	if len(errs) > 0 {
		return errs
	}

	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

type UpdateLeaveStatusRequest struct {
	ID     string             `json:"-"`
	Status LeaveRequestStatus `json:"status"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	if r.Status != LeaveRequestStatusApproved && r.Status != LeaveRequestStatusRejected {
		return ErrInvalidStatus
	}
	return nil
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *LeaveRequestStatus
}

func (f LeaveRequestFilter) Validate() error {
	if f.Status != nil && !f.Status.IsValid() {
		return ErrInvalidStatusFilter
	}
	return nil
}

type LeaveRequestResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Days       int       `json:"days"`
	Status     string    `json:"status"`
	LeaveType  string    `json:"leave_type"`
	AppliedOn  time.Time `json:"applied_on"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		StartDate:  r.StartDate.Format(validator.DateLayout),
		EndDate:    r.EndDate.Format(validator.DateLayout),
		Days:       r.Days(),
		Status:     string(r.Status),
		LeaveType:  r.LeaveType,
		AppliedOn:  r.AppliedOn,
	}
}

type BalanceResponse struct {
	EmployeeID        string `json:"employee_id"`
	TotalLeaveBalance int    `json:"total_leave_balance"`
	LeaveUsed         int    `json:"leave_used"`
	LeaveRemaining    int    `json:"leave_remaining"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:        b.EmployeeID,
		TotalLeaveBalance: b.TotalLeaveBalance,
		LeaveUsed:         b.LeaveUsed,
		LeaveRemaining:    b.LeaveRemaining,
	}
}

type StatsResponse struct {
	TotalEmployees   int64 `json:"total_employees"`
	PendingRequests  int64 `json:"pending_requests"`
	ApprovedRequests int64 `json:"approved_requests"`
	RejectedRequests int64 `json:"rejected_requests"`
}
