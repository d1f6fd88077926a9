package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrRequestNotFound      = errors.New("leave request not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrOverlappingRequest   = errors.New("overlapping request")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrAttachmentRequired   = errors.New("this leave type requires an attachment")
	ErrAlreadyProcessed     = errors.New("leave request has already been processed")
	ErrNotRequester         = errors.New("only the requester may cancel a pending request")
	ErrRejectionReason      = errors.New("rejection requires a reason")
	ErrWrongApprovalLevel   = errors.New("actor role does not match the current approval level")
	ErrConcurrentBalanceMismatch = errors.New("leave balance changed concurrently, retry the decision")
)

// EligibilityError carries the human reason an employee cannot take a
// leave type, surfaced verbatim to the caller.
type EligibilityError struct {
	Reason string
}

func (e EligibilityError) Error() string {
	return fmt.Sprintf("not eligible: %s", e.Reason)
}
