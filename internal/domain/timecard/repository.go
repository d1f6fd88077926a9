package timecard

import (
	"context"
	"time"
)

type TimecardRepository interface {
	Create(ctx context.Context, tc Timecard) (Timecard, error)

	GetByID(ctx context.Context, id string, companyID string) (Timecard, error)

	// GetByEmployeeAndDate returns nil when no row exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Timecard, error)

	// GetForUpdate locks the row by (employee, date) inside the current
	// transaction; returns nil when absent.
	GetForUpdate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Timecard, error)

	// GetByIDForUpdate locks the row by id inside the current transaction.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (Timecard, error)

	Update(ctx context.Context, tc Timecard) error

	// History lists an employee's timecards for a month.
	History(ctx context.Context, employeeID string, month int, year int, companyID string) ([]Timecard, error)

	// ListPendingByEmployeeIDs lists completed, approval-pending
	// timecards for the given team members.
	ListPendingByEmployeeIDs(ctx context.Context, companyID string, employeeIDs []string) ([]Timecard, error)

	// LockApprovedUnlinked locks and returns the employee's approved,
	// not-yet-linked timecards of a month inside the current transaction.
	LockApprovedUnlinked(ctx context.Context, employeeID string, month, year int) ([]Timecard, error)

	// StampPayrollItem sets payroll_item_id on the given rows.
	StampPayrollItem(ctx context.Context, ids []string, payrollItemID string) error

	// ClearPayrollItem unstamps every timecard of a payroll item.
	ClearPayrollItem(ctx context.Context, payrollItemID string) error

	// ListStaleInProgress lists in-progress timecards dated before the
	// given day, across all companies.
	ListStaleInProgress(ctx context.Context, before time.Time) ([]Timecard, error)
}
