package timecard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action identifies one of the four ordered clock actions.
type Action string

const (
	ActionClockIn1  Action = "clock_in_1"
	ActionClockOut1 Action = "clock_out_1"
	ActionClockIn2  Action = "clock_in_2"
	ActionClockOut2 Action = "clock_out_2"
)

func (a Action) Valid() bool {
	switch a {
	case ActionClockIn1, ActionClockOut1, ActionClockIn2, ActionClockOut2:
		return true
	}
	return false
}

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type AttendanceStatus string

const (
	AttendancePresent    AttendanceStatus = "present"
	AttendanceNoSchedule AttendanceStatus = "no_schedule"
)

// ClockEvent is one filled slot: the server-stamped time plus the
// evidence captured with it. Location and address are stored verbatim.
type ClockEvent struct {
	At             *time.Time
	Latitude       *float64
	Longitude      *float64
	Address        *string
	SelfieURL      *string
	FaceDetected   *bool
	FaceConfidence *float64
}

func (e ClockEvent) Filled() bool {
	return e.At != nil
}

// Timecard is the single row for one employee's one date, unique by
// (employee, date). Slots only ever move forward; a supervisor override
// may clear them, never advance them.
type Timecard struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	ScheduleID *string

	In1  ClockEvent
	Out1 ClockEvent
	In2  ClockEvent
	Out2 ClockEvent

	WorkMinutes *int
	OTMinutes   *int
	OTFlagged   bool
	// OTRate is applied later by payroll policy; clock actions never set it.
	OTRate *decimal.Decimal

	Status           Status
	ApprovalStatus   ApprovalStatus
	AttendanceStatus *AttendanceStatus

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	PayrollItemID *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	EmployeeName *string
}

// Slot returns a pointer to the event for an action.
func (t *Timecard) Slot(a Action) *ClockEvent {
	switch a {
	case ActionClockIn1:
		return &t.In1
	case ActionClockOut1:
		return &t.Out1
	case ActionClockIn2:
		return &t.In2
	case ActionClockOut2:
		return &t.Out2
	}
	return nil
}

func (t *Timecard) Linked() bool {
	return t.PayrollItemID != nil
}
