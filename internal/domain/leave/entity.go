package leave

import "time"

// EntitlementStep maps completed service years to entitled days; the
// highest step whose MinYears the employee has reached wins.
type EntitlementStep struct {
	MinYears int     `json:"min_years"`
	Days     float64 `json:"days"`
}

// LeaveType is a per-company leave policy, seeded from the Malaysian
// statutory defaults and editable by the admin surface.
type LeaveType struct {
	ID        string
	CompanyID string
	Code      string
	Name      string

	IsPaid             bool
	RequiresAttachment bool
	// IsConsecutive types (maternity, paternity) count calendar days
	// inclusive instead of working days.
	IsConsecutive         bool
	MaxOccurrencesPerYear *int
	MinServiceDays        *int
	GenderRestriction     *string // "male" / "female"
	CarriesForward        bool
	CarryForwardCap       *float64

	DefaultDays float64
	Steps       []EntitlementStep // stored as JSONB

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveBalance is unique by (employee, type, year). For paid types
// used_days never exceeds entitled + carried; unpaid types accumulate
// without cap and feed payroll as a deduction.
type LeaveBalance struct {
	ID             string
	EmployeeID     string
	LeaveTypeID    string
	Year           int
	EntitledDays   float64
	CarriedForward float64
	UsedDays       float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (b LeaveBalance) Available() float64 {
	return b.EntitledDays + b.CarriedForward - b.UsedDays
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// Approval levels: 1 = supervisor, 2 = manager, 3 = admin.
const (
	LevelSupervisor = 1
	LevelManager    = 2
	LevelAdmin      = 3
)

type LeaveRequest struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	TotalDays   float64
	HalfDay     bool
	Reason      *string

	AttachmentURL *string

	Status        RequestStatus
	ApprovalLevel int

	Level1By *string
	Level1At *time.Time
	Level2By *string
	Level2At *time.Time
	Level3By *string
	Level3At *time.Time

	RejectionReason *string
	PayrollItemID   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	EmployeeName  *string
	LeaveTypeCode *string
	IsPaid        *bool
}

func (r *LeaveRequest) Linked() bool {
	return r.PayrollItemID != nil
}

// Overlaps reports inclusive-range overlap with another date range.
func (r *LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !start.After(r.EndDate)
}
