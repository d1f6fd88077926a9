package advance

import (
	"github.com/gajihub/hr-backend-go/internal/domain/advance"
	"github.com/shopspring/decimal"
)

// DeductionFor returns the amount one advance contributes to a payroll
// month: the whole remainder for the full method, otherwise the
// installment clamped to what is left. Zero when the advance is not
// due or already settled.
func DeductionFor(a advance.Advance, month, year int) decimal.Decimal {
	if !a.DueIn(month, year) {
		return decimal.Zero
	}
	remaining := a.Remaining()
	if remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if a.Method == advance.MethodFull || a.InstallmentAmount == nil {
		return remaining
	}
	if a.InstallmentAmount.GreaterThan(remaining) {
		return remaining
	}
	return *a.InstallmentAmount
}

// Apply books a deduction against the advance, flipping it to
// completed when fully recovered.
func Apply(a *advance.Advance, amount decimal.Decimal) error {
	if a.Status != advance.StatusActive {
		return advance.ErrNotActive
	}
	if amount.GreaterThan(a.Remaining()) {
		return advance.ErrOverDeduction
	}
	a.TotalDeducted = a.TotalDeducted.Add(amount)
	if a.Remaining().IsZero() {
		a.Status = advance.StatusCompleted
	}
	return nil
}

// Refund reverses a booked deduction when a payroll item is unlinked,
// reactivating a completed advance.
func Refund(a *advance.Advance, amount decimal.Decimal) error {
	if amount.GreaterThan(a.TotalDeducted) {
		return advance.ErrRefundExceedsPaid
	}
	a.TotalDeducted = a.TotalDeducted.Sub(amount)
	if a.Status == advance.StatusCompleted && a.Remaining().GreaterThan(decimal.Zero) {
		a.Status = advance.StatusActive
	}
	return nil
}
