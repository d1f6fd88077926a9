package employee

import "time"

type Role string

const (
	RoleStaff      Role = "staff"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
)

type WorkType string

const (
	WorkTypeFullTime WorkType = "full_time"
	WorkTypePartTime WorkType = "part_time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusResigned Status = "resigned"
)

// Employee belongs to exactly one company and carries exactly one of
// OutletID / DepartmentID, matching the company's grouping mode.
type Employee struct {
	ID           string
	CompanyID    string
	FullName     string
	Role         Role
	Gender       string // "male" / "female"
	JoinDate     time.Time
	WorkType     WorkType
	Status       Status
	OutletID     *string
	DepartmentID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CompletedServiceYears returns full years of service as of a date.
func (e Employee) CompletedServiceYears(asOf time.Time) int {
	years := asOf.Year() - e.JoinDate.Year()
	anniversary := e.JoinDate.AddDate(years, 0, 0)
	if anniversary.After(asOf) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}

// ServiceDays returns calendar days of service as of a date.
func (e Employee) ServiceDays(asOf time.Time) int {
	days := int(asOf.Sub(e.JoinDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}
