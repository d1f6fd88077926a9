package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollItem is the monthly linkage record. Creating one freezes the
// rows it aggregates; deleting it releases them.
type PayrollItem struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Month      int
	Year       int

	WorkMinutes      int
	OTMinutes        int
	ClaimsTotal      decimal.Decimal
	UnpaidLeaveDays  float64
	AdvanceDeduction decimal.Decimal

	CreatedAt time.Time
}

// Period returns the inclusive first and last day of the payroll month.
func (p PayrollItem) Period(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)
	return start, end
}
