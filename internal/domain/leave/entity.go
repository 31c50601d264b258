package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

// ActiveStatuses are the statuses that hold a date range against new requests.
var ActiveStatuses = []LeaveRequestStatus{LeaveRequestStatusPending, LeaveRequestStatusApproved}

// LeaveRequest entity. EmployeeID is the department-scoped code, not the internal ID.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Status     LeaveRequestStatus
	LeaveType  string
	AppliedOn  time.Time
	UpdatedAt  time.Time
}

// Days is the inclusive length of the request in calendar days.
func (r LeaveRequest) Days() int {
	return DurationInDays(r.StartDate, r.EndDate)
}

// DurationInDays returns floor((end-start)/24h)+1.
func DurationInDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Overlaps reports whether the inclusive ranges share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

type Balance struct {
	EmployeeID        string
	TotalLeaveBalance int
	LeaveUsed         int
	LeaveRemaining    int
}

// NewBalance derives the remaining days, clamped at zero.
func NewBalance(employeeID string, total, used int) Balance {
	remaining := total - used
	if remaining < 0 {
		remaining = 0
	}
	return Balance{
		EmployeeID:        employeeID,
		TotalLeaveBalance: total,
		LeaveUsed:         used,
		LeaveRemaining:    remaining,
	}
}

type Stats struct {
	TotalEmployees   int64
	PendingRequests  int64
	ApprovedRequests int64
	RejectedRequests int64
}
