package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (LeaveType, error)
	ListByCompany(ctx context.Context, companyID string) ([]LeaveType, error)
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
}

type LeaveBalanceRepository interface {
	// Get returns the balance row; ErrBalanceNotFound when absent.
	Get(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)

	// GetForUpdate locks the balance row inside the current transaction.
	GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)

	Create(ctx context.Context, b LeaveBalance) (LeaveBalance, error)

	// AddUsed increments used_days on an already-locked row.
	AddUsed(ctx context.Context, id string, days float64) error

	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (LeaveRequest, error)
	Update(ctx context.Context, r LeaveRequest) error
	Delete(ctx context.Context, id string, companyID string) error

	// HasOverlapping reports any pending or approved request of the
	// employee whose inclusive range intersects [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// CountApprovedInYear counts approved requests of a type in a
	// calendar year, for occurrence caps.
	CountApprovedInYear(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)

	ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error)

	// ListPendingForLevel lists pending requests sitting at an approval
	// level for the given team members.
	ListPendingForLevel(ctx context.Context, companyID string, level int, employeeIDs []string) ([]LeaveRequest, error)

	// ListPendingForAdmin lists all level-3 pending requests of a company.
	ListPendingForAdmin(ctx context.Context, companyID string) ([]LeaveRequest, error)

	// LockApprovedUnpaidIntersecting locks and returns the employee's
	// approved, not-yet-linked requests of unpaid types whose range
	// intersects [start, end], inside the current transaction.
	LockApprovedUnpaidIntersecting(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)

	// StampPayrollItem sets payroll_item_id on the given rows.
	StampPayrollItem(ctx context.Context, ids []string, payrollItemID string) error

	// ClearPayrollItem unstamps every request of a payroll item.
	ClearPayrollItem(ctx context.Context, payrollItemID string) error
}
