package timecard

import "errors"

var (
	ErrAlreadyClockedIn = errors.New("you have already clocked in for this slot today")
	ErrOutOfOrderAction = errors.New("clock action out of order")
	ErrTimecardNotFound = errors.New("timecard not found")
	ErrNotCompleted     = errors.New("timecard is not completed yet")
	ErrAlreadyProcessed = errors.New("timecard has already been approved or rejected")
	ErrRejectionReason  = errors.New("rejection requires a reason")
)
