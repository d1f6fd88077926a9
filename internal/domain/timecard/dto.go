package timecard

import (
	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
)

// ClockActionRequest carries one clock action. Selfie bytes arrive via
// multipart upload; the server stamps the time, never the client.
type ClockActionRequest struct {
	Action         Action   `json:"action"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Address        *string  `json:"address,omitempty"`
	FaceDetected   bool     `json:"face_detected"`
	FaceConfidence *float64 `json:"face_confidence,omitempty"`

	Selfie         []byte `json:"-"`
	SelfieFilename string `json:"-"`
}

func (r *ClockActionRequest) Validate(selfieMaxBytes int64) error {
	var errs validator.ValidationErrors

	if !r.Action.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of clock_in_1, clock_out_1, clock_in_2, clock_out_2",
		})
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if *r.Latitude < -90 || *r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if *r.Longitude < -180 || *r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(r.Selfie) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "selfie",
			Message: "selfie photo is required",
		})
	} else if int64(len(r.Selfie)) > selfieMaxBytes {
		errs = append(errs, validator.ValidationError{
			Field:   "selfie",
			Message: "selfie photo exceeds the configured size limit",
		})
	}

	if !r.FaceDetected {
		errs = append(errs, validator.ValidationError{
			Field:   "face_detected",
			Message: "a detected face is required for clock actions",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideTimecardRequest struct {
	ID     string `json:"id"`
	Reason string `json:"reason,omitempty"`
}

// OverrideRequest lets a supervisor clear slots that were written in
// error. Slots can only be cleared, never advanced.
type OverrideRequest struct {
	ID         string   `json:"id"`
	ClearSlots []Action `json:"clear_slots"`
}

func (r *OverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if len(r.ClearSlots) == 0 {
		errs = append(errs, validator.ValidationError{Field: "clear_slots", Message: "at least one slot is required"})
	}
	for _, a := range r.ClearSlots {
		if !a.Valid() {
			errs = append(errs, validator.ValidationError{Field: "clear_slots", Message: "unknown slot " + string(a)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	Month int
	Year  int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if f.Year < 2000 || f.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockEventResponse struct {
	Time           *string  `json:"time,omitempty"` // HH:MM:SS
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Address        *string  `json:"address,omitempty"`
	SelfieURL      *string  `json:"selfie_url,omitempty"`
	FaceDetected   *bool    `json:"face_detected,omitempty"`
	FaceConfidence *float64 `json:"face_confidence,omitempty"`
}

type TimecardResponse struct {
	ID               string             `json:"id"`
	EmployeeID       string             `json:"employee_id"`
	EmployeeName     *string            `json:"employee_name,omitempty"`
	Date             string             `json:"date"`
	In1              ClockEventResponse `json:"in1"`
	Out1             ClockEventResponse `json:"out1"`
	In2              ClockEventResponse `json:"in2"`
	Out2             ClockEventResponse `json:"out2"`
	WorkMinutes      *int               `json:"work_minutes,omitempty"`
	OTMinutes        *int               `json:"ot_minutes,omitempty"`
	OTFlagged        bool               `json:"ot_flagged"`
	Status           string             `json:"status"`
	ApprovalStatus   string             `json:"approval_status"`
	AttendanceStatus *string            `json:"attendance_status,omitempty"`
	RejectionReason  *string            `json:"rejection_reason,omitempty"`
	LinkedToPayroll  bool               `json:"linked_to_payroll"`
}

func newClockEventResponse(e ClockEvent) ClockEventResponse {
	resp := ClockEventResponse{
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Address:        e.Address,
		SelfieURL:      e.SelfieURL,
		FaceDetected:   e.FaceDetected,
		FaceConfidence: e.FaceConfidence,
	}
	if e.At != nil {
		t := e.At.Format("15:04:05")
		resp.Time = &t
	}
	return resp
}

func NewTimecardResponse(t Timecard) TimecardResponse {
	resp := TimecardResponse{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		EmployeeName:    t.EmployeeName,
		Date:            t.Date.Format("2006-01-02"),
		In1:             newClockEventResponse(t.In1),
		Out1:            newClockEventResponse(t.Out1),
		In2:             newClockEventResponse(t.In2),
		Out2:            newClockEventResponse(t.Out2),
		WorkMinutes:     t.WorkMinutes,
		OTMinutes:       t.OTMinutes,
		OTFlagged:       t.OTFlagged,
		Status:          string(t.Status),
		ApprovalStatus:  string(t.ApprovalStatus),
		RejectionReason: t.RejectionReason,
		LinkedToPayroll: t.Linked(),
	}
	if t.AttendanceStatus != nil {
		s := string(*t.AttendanceStatus)
		resp.AttendanceStatus = &s
	}
	return resp
}

func NewTimecardResponses(ts []Timecard) []TimecardResponse {
	out := make([]TimecardResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTimecardResponse(t))
	}
	return out
}
