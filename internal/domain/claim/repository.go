package claim

import "context"

type ClaimRepository interface {
	Create(ctx context.Context, c Claim) (Claim, error)
	GetByID(ctx context.Context, id string, companyID string) (Claim, error)

	// GetByIDForUpdate locks the claim row inside the current
	// transaction; linkage checks must run on the locked row.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (Claim, error)

	Update(ctx context.Context, c Claim) error
	Delete(ctx context.Context, id string, companyID string) error

	// ExistsByReceiptHash reports a prior claim of the employee with the
	// same receipt hash.
	ExistsByReceiptHash(ctx context.Context, employeeID, receiptHash string) (bool, error)

	ListByEmployee(ctx context.Context, employeeID string, month, year int) ([]Claim, error)

	// ListPendingByEmployeeIDs lists pending claims for the team scope.
	ListPendingByEmployeeIDs(ctx context.Context, companyID string, employeeIDs []string) ([]Claim, error)

	// LockApprovedUnlinked locks and returns the employee's approved,
	// not-yet-linked claims dated in a month, inside the current
	// transaction.
	LockApprovedUnlinked(ctx context.Context, employeeID string, month, year int) ([]Claim, error)

	// StampPayrollItem sets linked_payroll_item_id on the given rows.
	StampPayrollItem(ctx context.Context, ids []string, payrollItemID string) error

	// ClearPayrollItem unstamps every claim of a payroll item.
	ClearPayrollItem(ctx context.Context, payrollItemID string) error
}

type CategoryRuleRepository interface {
	GetByCategory(ctx context.Context, companyID, category string) (CategoryRule, error)
	ListByCompany(ctx context.Context, companyID string) ([]CategoryRule, error)
	Create(ctx context.Context, rule CategoryRule) (CategoryRule, error)
}
