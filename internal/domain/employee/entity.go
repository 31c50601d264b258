package employee

import "time"

const DefaultTotalLeaveBalance = 18

type Employee struct {
	ID                string
	EmployeeID        string
	Name              string
	Email             string
	Department        string
	Position          string
	JoiningDate       time.Time
	TotalLeaveBalance int
	LeaveUsed         int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DepartmentCounter records the highest sequence ever issued in a department.
// Allocation never reads it.
type DepartmentCounter struct {
	Department string
	Seq        int
	UpdatedAt  time.Time
}
