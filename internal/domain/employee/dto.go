package employee

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
)

// Column limits of the employees table.
const (
	MaxNameLength     = 255
	MaxEmailLength    = 255
	MaxPositionLength = 100
	// MaxDepartmentLength keeps "<DEPARTMENT>-<sequence>" within the 64-character employee_id.
	MaxDepartmentLength = 56
)

func tooLong(field string, max int) validator.ValidationError {
	return validator.ValidationError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, max)}
}

type CreateEmployeeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Position    string `json:"position"`
	JoiningDate string `json:"joining_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if !validator.MinLength(r.Name, 2) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must be at least 2 characters"})
	} else if !validator.MaxLength(r.Name, MaxNameLength) {
		errs = append(errs, tooLong("name", MaxNameLength))
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.MaxLength(r.Email, MaxEmailLength) {
		errs = append(errs, tooLong("email", MaxEmailLength))
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	} else if !validator.MinLength(r.Department, 2) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department must be at least 2 characters"})
	} else if !validator.MaxLength(r.Department, MaxDepartmentLength) {
		errs = append(errs, tooLong("department", MaxDepartmentLength))
	}

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	} else if !validator.MaxLength(r.Position, MaxPositionLength) {
		errs = append(errs, tooLong("position", MaxPositionLength))
	}

	if validator.IsEmpty(r.JoiningDate) {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date is required"})
	} else if _, ok := validator.ParseDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Department  *string `json:"department,omitempty"`
	Position    *string `json:"position,omitempty"`
	JoiningDate *string `json:"joining_date,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}

	if r.Name != nil {
		if !validator.MinLength(*r.Name, 2) {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must be at least 2 characters"})
		} else if !validator.MaxLength(*r.Name, MaxNameLength) {
			errs = append(errs, tooLong("name", MaxNameLength))
		}
	}

	if r.Email != nil {
		if !validator.MaxLength(*r.Email, MaxEmailLength) {
			errs = append(errs, tooLong("email", MaxEmailLength))
		} else if !validator.IsValidEmail(*r.Email) {
			errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
		}
	}

	if r.Department != nil {
		if !validator.MinLength(*r.Department, 2) {
			errs = append(errs, validator.ValidationError{Field: "department", Message: "department must be at least 2 characters"})
		} else if !validator.MaxLength(*r.Department, MaxDepartmentLength) {
			errs = append(errs, tooLong("department", MaxDepartmentLength))
		}
	}

	if r.Position != nil {
		if validator.IsEmpty(*r.Position) {
			errs = append(errs, validator.ValidationError{Field: "position", Message: "position must not be empty"})
		} else if !validator.MaxLength(*r.Position, MaxPositionLength) {
			errs = append(errs, tooLong("position", MaxPositionLength))
		}
	}

	if r.JoiningDate != nil {
		if _, ok := validator.ParseDate(*r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                string    `json:"id"`
	EmployeeID        string    `json:"employee_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Department        string    `json:"department"`
	Position          string    `json:"position"`
	JoiningDate       string    `json:"joining_date"`
	TotalLeaveBalance int       `json:"total_leave_balance"`
	LeaveUsed         int       `json:"leave_used"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                e.ID,
		EmployeeID:        e.EmployeeID,
		Name:              e.Name,
		Email:             e.Email,
		Department:        e.Department,
		Position:          e.Position,
		JoiningDate:       e.JoiningDate.Format(validator.DateLayout),
		TotalLeaveBalance: e.TotalLeaveBalance,
		LeaveUsed:         e.LeaveUsed,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

type DeleteEmployeeResponse struct {
	ID                   string `json:"id"`
	EmployeeID           string `json:"employee_id"`
	DeletedLeaveRequests int64  `json:"deleted_leave_requests"`
}
