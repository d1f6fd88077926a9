package payroll

import "context"

type PayrollItemRepository interface {
	Create(ctx context.Context, item PayrollItem) (PayrollItem, error)
	GetByID(ctx context.Context, id string, companyID string) (PayrollItem, error)
	Update(ctx context.Context, item PayrollItem) error
	Delete(ctx context.Context, id string, companyID string) error

	// ExistsForMonth reports a payroll item already covering the
	// employee's month.
	ExistsForMonth(ctx context.Context, employeeID string, month, year int) (bool, error)

	ListByCompanyMonth(ctx context.Context, companyID string, month, year int) ([]PayrollItem, error)
}
