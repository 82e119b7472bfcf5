package response

import (
	"errors"
	"net/http"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/auth"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/report"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/user"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrPhoneNumberExists):
		Conflict(w, "Phone number already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance state conflicts surface as client errors; the day's
	// record stays exactly as it was.
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrAlreadyMarkedAbsent),
		errors.Is(err, attendance.ErrNoRecordForToday),
		errors.Is(err, attendance.ErrPermissionTaken),
		errors.Is(err, attendance.ErrShiftEnded):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Report domain errors
	case errors.Is(err, report.ErrDailyReportNotFound):
		NotFound(w, "Daily report not found")
	case errors.Is(err, report.ErrMonthlyReportNotFound):
		NotFound(w, "Monthly report not found")
	case errors.Is(err, report.ErrInvalidDateFormat),
		errors.Is(err, report.ErrInvalidMonthFormat):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
