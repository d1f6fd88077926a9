package schedule

import (
	"context"
	"time"
)

type ShiftRepository interface {
	// HasShiftOn reports whether the employee has any scheduled shift
	// on the given date.
	HasShiftOn(ctx context.Context, employeeID string, date time.Time) (bool, error)

	ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]Shift, error)
}
