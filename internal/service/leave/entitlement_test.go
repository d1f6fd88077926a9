package leave

import (
	"context"
	"testing"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func annualLeave() leave.LeaveType {
	return leave.LeaveType{
		ID:          "lt-annual",
		Name:        "Annual Leave",
		IsPaid:      true,
		DefaultDays: 8,
		Steps: []leave.EntitlementStep{
			{MinYears: 0, Days: 8},
			{MinYears: 2, Days: 12},
			{MinYears: 5, Days: 16},
		},
	}
}

func TestEntitlementSteps(t *testing.T) {
	lt := annualLeave()

	assert.Equal(t, 8.0, Entitlement(lt, 0))
	assert.Equal(t, 8.0, Entitlement(lt, 1))
	assert.Equal(t, 12.0, Entitlement(lt, 2))
	assert.Equal(t, 12.0, Entitlement(lt, 4))
	assert.Equal(t, 16.0, Entitlement(lt, 5))
	assert.Equal(t, 16.0, Entitlement(lt, 20))
}

func TestEntitlementDefaultWithoutSteps(t *testing.T) {
	lt := leave.LeaveType{DefaultDays: 7}
	assert.Equal(t, 7.0, Entitlement(lt, 10))
}

type stubCounter struct {
	count int
	err   error
}

func (s stubCounter) CountApprovedInYear(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	return s.count, s.err
}

func TestEligibilityGenderRestriction(t *testing.T) {
	lt := leave.LeaveType{Name: "Maternity Leave", GenderRestriction: strPtr("female")}
	emp := employee.Employee{ID: "emp-1", Gender: "male"}

	err := Eligibility(context.Background(), stubCounter{}, emp, lt, time.Now())
	var eligErr leave.EligibilityError
	require.ErrorAs(t, err, &eligErr)
	assert.Contains(t, eligErr.Reason, "female")
}

func TestEligibilityMinServiceDays(t *testing.T) {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	lt := leave.LeaveType{Name: "Annual Leave", MinServiceDays: intPtr(90)}

	junior := employee.Employee{ID: "emp-1", Gender: "male", JoinDate: start.AddDate(0, 0, -30)}
	err := Eligibility(context.Background(), stubCounter{}, junior, lt, start)
	var eligErr leave.EligibilityError
	require.ErrorAs(t, err, &eligErr)

	tenured := employee.Employee{ID: "emp-2", Gender: "male", JoinDate: start.AddDate(0, 0, -120)}
	assert.NoError(t, Eligibility(context.Background(), stubCounter{}, tenured, lt, start))
}

func TestEligibilityOccurrenceCap(t *testing.T) {
	lt := leave.LeaveType{ID: "lt-marriage", Name: "Marriage Leave", MaxOccurrencesPerYear: intPtr(1)}
	emp := employee.Employee{ID: "emp-1", Gender: "male", JoinDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}

	assert.NoError(t, Eligibility(context.Background(), stubCounter{count: 0}, emp, lt, time.Now()))

	err := Eligibility(context.Background(), stubCounter{count: 1}, emp, lt, time.Now())
	var eligErr leave.EligibilityError
	require.ErrorAs(t, err, &eligErr)
	assert.Contains(t, eligErr.Reason, "limited to 1")
}

func TestEligibilityOrderShortCircuits(t *testing.T) {
	// Gender fails first even when the occurrence cap would also fail.
	lt := leave.LeaveType{
		Name:                  "Maternity Leave",
		GenderRestriction:     strPtr("female"),
		MaxOccurrencesPerYear: intPtr(1),
	}
	emp := employee.Employee{ID: "emp-1", Gender: "male"}

	err := Eligibility(context.Background(), stubCounter{count: 5}, emp, lt, time.Now())
	var eligErr leave.EligibilityError
	require.ErrorAs(t, err, &eligErr)
	assert.Contains(t, eligErr.Reason, "restricted")
}
