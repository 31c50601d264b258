package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-tracker/internal/pkg/apperror"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Field errors carry per-field details
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		slog.Error("Internal error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	message := err.Error()
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch kind {
	case apperror.KindNotFound:
		NotFound(w, message)
	case apperror.KindConflict:
		Conflict(w, message)
	case apperror.KindInvalidInput:
		BadRequest(w, message, nil)
	case apperror.KindBusinessRuleViolation:
		BusinessRuleViolation(w, message)
	default:
		slog.Error("Unclassified error", "error", err, "kind", kind)
		InternalServerError(w, "An unexpected error occurred")
	}
}
