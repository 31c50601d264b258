package leave

import "github.com/cmlabs-hris/leave-tracker/internal/pkg/apperror"

var (
	ErrLeaveRequestNotFound         = apperror.New(apperror.KindNotFound, "Leave request not found")
	ErrEndBeforeStart               = apperror.New(apperror.KindInvalidInput, "End date cannot be before start date")
	ErrInvalidDuration              = apperror.New(apperror.KindInvalidInput, "Invalid leave duration")
	ErrInvalidStatus                = apperror.New(apperror.KindInvalidInput, `Status must be "approved" or "rejected"`)
	ErrInvalidStatusFilter          = apperror.New(apperror.KindInvalidInput, "Status filter must be pending, approved or rejected")
	ErrLeaveRequestAlreadyProcessed = apperror.New(apperror.KindInvalidInput, "Only pending requests can be updated")
	ErrBeforeJoiningDate            = apperror.New(apperror.KindBusinessRuleViolation, "Cannot take leave before joining date")
	ErrInsufficientBalance          = apperror.New(apperror.KindBusinessRuleViolation, "Insufficient leave balance")
	ErrOverlappingLeave             = apperror.New(apperror.KindBusinessRuleViolation, "Leave overlaps with an existing request")
)
