package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodFull        Method = "full"
	MethodInstallment Method = "installment"
)

func (m Method) Valid() bool {
	return m == MethodFull || m == MethodInstallment
}

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Advance struct {
	ID         string
	CompanyID  string
	EmployeeID string

	Amount            decimal.Decimal
	Method            Method
	InstallmentAmount *decimal.Decimal

	// First payroll month the advance may be deducted in.
	FirstDeductionMonth int
	FirstDeductionYear  int

	TotalDeducted decimal.Decimal
	Status        Status
	Reason        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining is the amount still owed.
func (a Advance) Remaining() decimal.Decimal {
	return a.Amount.Sub(a.TotalDeducted)
}

// DueIn reports whether the advance may be deducted in the given
// payroll month.
func (a Advance) DueIn(month, year int) bool {
	if a.Status != StatusActive {
		return false
	}
	if year != a.FirstDeductionYear {
		return year > a.FirstDeductionYear
	}
	return month >= a.FirstDeductionMonth
}

// Deduction records one payroll-applied installment so an unlink can
// reverse it exactly.
type Deduction struct {
	ID            string
	AdvanceID     string
	PayrollItemID string
	Amount        decimal.Decimal
	Month         int
	Year          int
	CreatedAt     time.Time
}
