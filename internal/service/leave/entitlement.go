package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
)

// Entitlement returns the days a leave type grants after the given
// completed service years: the highest step reached, or the default
// when no step applies.
func Entitlement(lt leave.LeaveType, completedYears int) float64 {
	days := lt.DefaultDays
	best := -1
	for _, step := range lt.Steps {
		if completedYears >= step.MinYears && step.MinYears > best {
			best = step.MinYears
			days = step.Days
		}
	}
	return days
}

// OccurrenceCounter is the one read Eligibility needs from storage.
type OccurrenceCounter interface {
	CountApprovedInYear(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)
}

// Eligibility checks, in order: gender restriction, minimum service
// days, and the per-year occurrence cap. The first failure returns an
// EligibilityError with its reason.
func Eligibility(ctx context.Context, counter OccurrenceCounter, emp employee.Employee, lt leave.LeaveType, start time.Time) error {
	if lt.GenderRestriction != nil && emp.Gender != *lt.GenderRestriction {
		return leave.EligibilityError{Reason: fmt.Sprintf("%s is restricted to %s employees", lt.Name, *lt.GenderRestriction)}
	}

	if lt.MinServiceDays != nil && emp.ServiceDays(start) < *lt.MinServiceDays {
		return leave.EligibilityError{Reason: fmt.Sprintf("%s requires %d days of service", lt.Name, *lt.MinServiceDays)}
	}

	if lt.MaxOccurrencesPerYear != nil {
		count, err := counter.CountApprovedInYear(ctx, emp.ID, lt.ID, start.Year())
		if err != nil {
			return err
		}
		if count >= *lt.MaxOccurrencesPerYear {
			return leave.EligibilityError{Reason: fmt.Sprintf("%s is limited to %d per year", lt.Name, *lt.MaxOccurrencesPerYear)}
		}
	}
	return nil
}
