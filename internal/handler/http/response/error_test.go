package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/domain/payroll"
	"github.com/gajihub/hr-backend-go/internal/domain/timecard"
	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
	"github.com/gajihub/hr-backend-go/internal/service/approval"
	"github.com/stretchr/testify/assert"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"timecard not found", timecard.ErrTimecardNotFound, http.StatusNotFound},
		{"slot already filled", timecard.ErrAlreadyClockedIn, http.StatusConflict},
		{"out of order", timecard.ErrOutOfOrderAction, http.StatusConflict},
		{"overlapping leave", leave.ErrOverlappingRequest, http.StatusConflict},
		{"insufficient balance", leave.ErrInsufficientBalance, http.StatusBadRequest},
		{"wrong level", leave.ErrWrongApprovalLevel, http.StatusForbidden},
		{"not permitted", approval.ErrNotPermitted, http.StatusForbidden},
		{"linked to payroll", payroll.ErrLinkedToPayroll, http.StatusConflict},
		{"already linked", payroll.ErrAlreadyLinked, http.StatusConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestHandleErrorValidation(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "start_date", Message: "start_date must be YYYY-MM-DD"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_date")
}

func TestHandleErrorEligibilityReason(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, leave.EligibilityError{Reason: "minimum service period not met"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "minimum service period not met")
}
