package notification

import "time"

type Type string

const (
	TypeOvertimeFlagged Type = "overtime_flagged"
	TypeLeaveSubmitted  Type = "leave_submitted"
	TypeLeaveDecided    Type = "leave_decided"
	TypeClaimSubmitted  Type = "claim_submitted"
	TypeClaimDecided    Type = "claim_decided"
	TypeTimecardDecided Type = "timecard_decided"
)

type Notification struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Type       Type
	Title      string
	Message    string

	// ReferenceID points at the row the notification is about.
	ReferenceID *string

	ReadAt    *time.Time
	CreatedAt time.Time
}
