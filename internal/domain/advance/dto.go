package advance

import (
	"time"

	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordAdvanceRequest struct {
	EmployeeID          string  `json:"employee_id"`
	Amount              string  `json:"amount"`
	Method              string  `json:"method"`
	InstallmentAmount   *string `json:"installment_amount,omitempty"`
	FirstDeductionMonth int     `json:"first_deduction_month"`
	FirstDeductionYear  int     `json:"first_deduction_year"`
	Reason              *string `json:"reason,omitempty"`

	// Parsed during validation
	ParsedAmount      decimal.Decimal  `json:"-"`
	ParsedInstallment *decimal.Decimal `json:"-"`
}

// Validate checks the request against "now"; the first deduction month
// must not be earlier than the month after the advance is recorded.
func (r *RecordAdvanceRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	if !validator.IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be a decimal with at most two fractional digits"})
	} else {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil || !amount.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be positive"})
		} else {
			r.ParsedAmount = amount
		}
	}

	method := Method(r.Method)
	if !method.Valid() {
		errs = append(errs, validator.ValidationError{Field: "method", Message: "method must be full or installment"})
	}
	if method == MethodInstallment {
		if r.InstallmentAmount == nil || !validator.IsValidAmount(*r.InstallmentAmount) {
			errs = append(errs, validator.ValidationError{Field: "installment_amount", Message: "installment_amount is required for the installment method"})
		} else {
			installment, err := decimal.NewFromString(*r.InstallmentAmount)
			if err != nil || !installment.IsPositive() {
				errs = append(errs, validator.ValidationError{Field: "installment_amount", Message: "installment_amount must be positive"})
			} else {
				r.ParsedInstallment = &installment
			}
		}
	}

	if !validator.IsValidMonth(r.FirstDeductionMonth) {
		errs = append(errs, validator.ValidationError{Field: "first_deduction_month", Message: "first_deduction_month must be between 1 and 12"})
	} else {
		next := now.AddDate(0, 1, -now.Day()+1)
		first := time.Date(r.FirstDeductionYear, time.Month(r.FirstDeductionMonth), 1, 0, 0, 0, 0, now.Location())
		if first.Before(time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, now.Location())) {
			errs = append(errs, validator.ValidationError{Field: "first_deduction_month", Message: "first deduction cannot be earlier than next month"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	Amount              string  `json:"amount"`
	Method              string  `json:"method"`
	InstallmentAmount   *string `json:"installment_amount,omitempty"`
	FirstDeductionMonth int     `json:"first_deduction_month"`
	FirstDeductionYear  int     `json:"first_deduction_year"`
	TotalDeducted       string  `json:"total_deducted"`
	Remaining           string  `json:"remaining"`
	Status              string  `json:"status"`
	Reason              *string `json:"reason,omitempty"`
}

// DeductionLine is one payroll-month line item before it is applied.
type DeductionLine struct {
	AdvanceID string          `json:"advance_id"`
	Amount    decimal.Decimal `json:"amount"`
}

func NewAdvanceResponse(a Advance) AdvanceResponse {
	resp := AdvanceResponse{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		Amount:              a.Amount.StringFixed(2),
		Method:              string(a.Method),
		FirstDeductionMonth: a.FirstDeductionMonth,
		FirstDeductionYear:  a.FirstDeductionYear,
		TotalDeducted:       a.TotalDeducted.StringFixed(2),
		Remaining:           a.Remaining().StringFixed(2),
		Status:              string(a.Status),
		Reason:              a.Reason,
	}
	if a.InstallmentAmount != nil {
		s := a.InstallmentAmount.StringFixed(2)
		resp.InstallmentAmount = &s
	}
	return resp
}

func NewAdvanceResponses(as []Advance) []AdvanceResponse {
	out := make([]AdvanceResponse, 0, len(as))
	for _, a := range as {
		out = append(out, NewAdvanceResponse(a))
	}
	return out
}
