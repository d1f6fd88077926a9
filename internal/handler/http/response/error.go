package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gajihub/hr-backend-go/internal/domain/advance"
	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/domain/holiday"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/domain/notification"
	"github.com/gajihub/hr-backend-go/internal/domain/payroll"
	"github.com/gajihub/hr-backend-go/internal/domain/timecard"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
	"github.com/gajihub/hr-backend-go/internal/service/approval"
	"github.com/gajihub/hr-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var eligibility leave.EligibilityError
	if errors.As(err, &eligibility) {
		BadRequest(w, eligibility.Error(), nil)
		return
	}

	switch {
	// Token errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Token is missing required claims")

	// Authorization
	case errors.Is(err, approval.ErrNotPermitted):
		Forbidden(w, "You are not allowed to act on this record")

	// Company and employee
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Timecards
	case errors.Is(err, timecard.ErrTimecardNotFound):
		NotFound(w, "Timecard not found")
	case errors.Is(err, timecard.ErrAlreadyClockedIn):
		Conflict(w, "You have already clocked in for this slot today")
	case errors.Is(err, timecard.ErrOutOfOrderAction):
		Conflict(w, "Clock action out of order")
	case errors.Is(err, timecard.ErrNotCompleted):
		BadRequest(w, "Timecard is not completed yet", nil)
	case errors.Is(err, timecard.ErrAlreadyProcessed):
		Conflict(w, "Timecard has already been approved or rejected")
	case errors.Is(err, timecard.ErrRejectionReason):
		BadRequest(w, "Rejection requires a reason", nil)

	// Leave
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrAttachmentRequired):
		BadRequest(w, "This leave type requires an attachment", nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request has already been processed")
	case errors.Is(err, leave.ErrNotRequester):
		Forbidden(w, "Only the requester may cancel a pending request")
	case errors.Is(err, leave.ErrRejectionReason):
		BadRequest(w, "Rejection requires a reason", nil)
	case errors.Is(err, leave.ErrWrongApprovalLevel):
		Forbidden(w, "Your role does not match the current approval level")
	case errors.Is(err, leave.ErrConcurrentBalanceMismatch):
		Conflict(w, "Leave balance changed concurrently, retry the decision")

	// Claims
	case errors.Is(err, claim.ErrClaimNotFound):
		NotFound(w, "Claim not found")
	case errors.Is(err, claim.ErrCategoryNotFound):
		NotFound(w, "Claim category not configured")
	case errors.Is(err, claim.ErrDuplicateReceipt):
		Conflict(w, "A claim with the same receipt already exists")
	case errors.Is(err, claim.ErrNotPending):
		Conflict(w, "Claim is not pending")
	case errors.Is(err, claim.ErrNotProcessed):
		Conflict(w, "Only approved or rejected claims can be reverted")
	case errors.Is(err, claim.ErrReceiptRequired):
		BadRequest(w, "This category requires a receipt", nil)
	case errors.Is(err, claim.ErrRejectionReason):
		BadRequest(w, "Rejection requires a reason", nil)

	// Salary advances
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Salary advance not found")
	case errors.Is(err, advance.ErrNotActive):
		Conflict(w, "Salary advance is not active")
	case errors.Is(err, advance.ErrOverDeduction):
		Conflict(w, "Deduction exceeds the remaining advance amount")
	case errors.Is(err, advance.ErrRefundExceedsPaid):
		Conflict(w, "Refund exceeds the deducted total")

	// Holidays
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrDuplicateHoliday):
		Conflict(w, "A holiday already exists on that date")

	// Payroll linkage
	case errors.Is(err, payroll.ErrPayrollItemNotFound):
		NotFound(w, "Payroll item not found")
	case errors.Is(err, payroll.ErrAlreadyLinked):
		Conflict(w, "A payroll item already exists for this employee and month")
	case errors.Is(err, payroll.ErrLinkedToPayroll):
		Conflict(w, "Record is linked to a payroll item")

	// Notifications
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Object storage
	case errors.Is(err, file.ErrStorageUnavailable):
		BadGateway(w, "Object storage is unavailable, try again later")

	// Default
	default:
		slog.Error("unhandled service error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
