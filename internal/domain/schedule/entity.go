package schedule

import "time"

// Shift is a read-side projection of the scheduling collaborator. The
// engine only asks whether a shift exists on a date; building rosters
// is out of its hands.
type Shift struct {
	ID         string
	CompanyID  string
	EmployeeID string
	OutletID   *string
	Date       time.Time
	StartTime  string
	EndTime    string
}
