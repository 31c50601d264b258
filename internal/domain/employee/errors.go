package employee

import "github.com/cmlabs-hris/leave-tracker/internal/pkg/apperror"

var (
	ErrEmployeeNotFound = apperror.New(apperror.KindNotFound, "Employee not found")
	ErrEmailExists      = apperror.New(apperror.KindConflict, "Email already exists")
	ErrEmployeeIDExists = apperror.New(apperror.KindConflict, "Employee ID already exists")
)
