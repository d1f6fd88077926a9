package leave

import (
	"time"

	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
	EndDate     string  `json:"end_date"`
	HalfDay     bool    `json:"half_day"`
	Reason      *string `json:"reason,omitempty"`

	Attachment         []byte `json:"-"`
	AttachmentFilename string `json:"-"`

	// Parsed during validation
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Validate checks field shape and date ordering. Dates must not be in
// the past relative to today in the company timezone.
func (r *SubmitLeaveRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "leave_type_id is required"})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}

	if okStart && okEnd {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
		}
		if start.Before(today) {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "leave dates must be in the future"})
		}
		r.Start = start
		r.End = end
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type DecideLeaveRequest struct {
	ID       string   `json:"id"`
	Decision Decision `json:"decision"`
	Reason   *string  `json:"reason,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Decision != DecisionApprove && r.Decision != DecisionReject {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "decision must be approve or reject"})
	}
	if r.Decision == DecisionReject && (r.Reason == nil || validator.IsEmpty(*r.Reason)) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "rejection requires a reason"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeCode *string `json:"leave_type_code,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     float64 `json:"total_days"`
	HalfDay       bool    `json:"half_day"`
	Reason        *string `json:"reason,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	ApprovalLevel int     `json:"approval_level"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	LinkedToPayroll bool  `json:"linked_to_payroll"`
}

type BalanceResponse struct {
	LeaveTypeID    string  `json:"leave_type_id"`
	LeaveTypeCode  string  `json:"leave_type_code"`
	Year           int     `json:"year"`
	EntitledDays   float64 `json:"entitled_days"`
	CarriedForward float64 `json:"carried_forward"`
	UsedDays       float64 `json:"used_days"`
	AvailableDays  float64 `json:"available_days"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		LeaveTypeID:     r.LeaveTypeID,
		LeaveTypeCode:   r.LeaveTypeCode,
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		TotalDays:       r.TotalDays,
		HalfDay:         r.HalfDay,
		Reason:          r.Reason,
		AttachmentURL:   r.AttachmentURL,
		Status:          string(r.Status),
		ApprovalLevel:   r.ApprovalLevel,
		RejectionReason: r.RejectionReason,
		LinkedToPayroll: r.Linked(),
	}
}

func NewLeaveRequestResponses(rs []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewLeaveRequestResponse(r))
	}
	return out
}

type LeaveTypeResponse struct {
	ID                    string            `json:"id"`
	Code                  string            `json:"code"`
	Name                  string            `json:"name"`
	IsPaid                bool              `json:"is_paid"`
	RequiresAttachment    bool              `json:"requires_attachment"`
	IsConsecutive         bool              `json:"is_consecutive"`
	MaxOccurrencesPerYear *int              `json:"max_occurrences_per_year,omitempty"`
	MinServiceDays        *int              `json:"min_service_days,omitempty"`
	GenderRestriction     *string           `json:"gender_restriction,omitempty"`
	CarriesForward        bool              `json:"carries_forward"`
	CarryForwardCap       *float64          `json:"carry_forward_cap,omitempty"`
	DefaultDays           float64           `json:"default_days"`
	Steps                 []EntitlementStep `json:"steps,omitempty"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                    lt.ID,
		Code:                  lt.Code,
		Name:                  lt.Name,
		IsPaid:                lt.IsPaid,
		RequiresAttachment:    lt.RequiresAttachment,
		IsConsecutive:         lt.IsConsecutive,
		MaxOccurrencesPerYear: lt.MaxOccurrencesPerYear,
		MinServiceDays:        lt.MinServiceDays,
		GenderRestriction:     lt.GenderRestriction,
		CarriesForward:        lt.CarriesForward,
		CarryForwardCap:       lt.CarryForwardCap,
		DefaultDays:           lt.DefaultDays,
		Steps:                 lt.Steps,
	}
}

func NewLeaveTypeResponses(lts []LeaveType) []LeaveTypeResponse {
	out := make([]LeaveTypeResponse, 0, len(lts))
	for _, lt := range lts {
		out = append(out, NewLeaveTypeResponse(lt))
	}
	return out
}
