package advance

import "context"

type AdvanceRepository interface {
	Create(ctx context.Context, a Advance) (Advance, error)
	GetByID(ctx context.Context, id string, companyID string) (Advance, error)

	// GetByIDForUpdate locks the advance row inside the current transaction.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (Advance, error)

	Update(ctx context.Context, a Advance) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Advance, error)

	// LockActiveDue locks and returns the employee's active advances
	// deductible in the payroll month, inside the current transaction.
	LockActiveDue(ctx context.Context, employeeID string, month, year int) ([]Advance, error)

	CreateDeduction(ctx context.Context, d Deduction) (Deduction, error)
	ListDeductionsByPayrollItem(ctx context.Context, payrollItemID string) ([]Deduction, error)
	DeleteDeductionsByPayrollItem(ctx context.Context, payrollItemID string) error
}
