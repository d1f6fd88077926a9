package payroll

import (
	"time"

	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
)

type LinkRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r LinkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollItemResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	Month            int    `json:"month"`
	Year             int    `json:"year"`
	WorkMinutes      int    `json:"work_minutes"`
	OTMinutes        int    `json:"ot_minutes"`
	ClaimsTotal      string `json:"claims_total"`
	UnpaidLeaveDays  float64 `json:"unpaid_leave_days"`
	AdvanceDeduction string `json:"advance_deduction"`
	CreatedAt        string `json:"created_at"`
}

func NewPayrollItemResponse(p PayrollItem) PayrollItemResponse {
	return PayrollItemResponse{
		ID:               p.ID,
		EmployeeID:       p.EmployeeID,
		Month:            p.Month,
		Year:             p.Year,
		WorkMinutes:      p.WorkMinutes,
		OTMinutes:        p.OTMinutes,
		ClaimsTotal:      p.ClaimsTotal.StringFixed(2),
		UnpaidLeaveDays:  p.UnpaidLeaveDays,
		AdvanceDeduction: p.AdvanceDeduction.StringFixed(2),
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}

func NewPayrollItemResponses(ps []PayrollItem) []PayrollItemResponse {
	out := make([]PayrollItemResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPayrollItemResponse(p))
	}
	return out
}
