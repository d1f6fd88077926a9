package postgresql

import (
	"context"
	"errors"

	"github.com/gajihub/hr-backend-go/internal/domain/payroll"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollItemRepositoryImpl struct {
	db *database.DB
}

func NewPayrollItemRepository(db *database.DB) payroll.PayrollItemRepository {
	return &payrollItemRepositoryImpl{db: db}
}

const payrollItemColumns = `
	id, company_id, employee_id, month, year,
	work_minutes, ot_minutes, claims_total, unpaid_leave_days, advance_deduction,
	created_at`

func scanPayrollItem(row pgx.Row) (payroll.PayrollItem, error) {
	var item payroll.PayrollItem
	err := row.Scan(
		&item.ID,
		&item.CompanyID,
		&item.EmployeeID,
		&item.Month,
		&item.Year,
		&item.WorkMinutes,
		&item.OTMinutes,
		&item.ClaimsTotal,
		&item.UnpaidLeaveDays,
		&item.AdvanceDeduction,
		&item.CreatedAt,
	)
	return item, err
}

// Create implements payroll.PayrollItemRepository.
func (r *payrollItemRepositoryImpl) Create(ctx context.Context, item payroll.PayrollItem) (payroll.PayrollItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_items (
			id, company_id, employee_id, month, year,
			work_minutes, ot_minutes, claims_total, unpaid_leave_days, advance_deduction,
			created_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, now()
		)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		item.CompanyID, item.EmployeeID, item.Month, item.Year,
		item.WorkMinutes, item.OTMinutes, item.ClaimsTotal, item.UnpaidLeaveDays, item.AdvanceDeduction,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return payroll.PayrollItem{}, err
	}
	return item, nil
}

// GetByID implements payroll.PayrollItemRepository.
func (r *payrollItemRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollItemColumns + `
		FROM payroll_items
		WHERE id = $1 AND company_id = $2`

	item, err := scanPayrollItem(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollItem{}, payroll.ErrPayrollItemNotFound
		}
		return payroll.PayrollItem{}, err
	}
	return item, nil
}

// Update implements payroll.PayrollItemRepository.
func (r *payrollItemRepositoryImpl) Update(ctx context.Context, item payroll.PayrollItem) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_items SET
			work_minutes = $2, ot_minutes = $3, claims_total = $4,
			unpaid_leave_days = $5, advance_deduction = $6
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query,
		item.ID, item.WorkMinutes, item.OTMinutes, item.ClaimsTotal,
		item.UnpaidLeaveDays, item.AdvanceDeduction,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return payroll.ErrPayrollItemNotFound
	}
	return nil
}

// Delete implements payroll.PayrollItemRepository.
func (r *payrollItemRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM payroll_items
		WHERE id = $1 AND company_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return payroll.ErrPayrollItemNotFound
	}
	return nil
}

// ExistsForMonth implements payroll.PayrollItemRepository.
func (r *payrollItemRepositoryImpl) ExistsForMonth(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_items
			WHERE employee_id = $1 AND month = $2 AND year = $3
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(&exists)
	return exists, err
}

// ListByCompanyMonth implements payroll.PayrollItemRepository.
func (r *payrollItemRepositoryImpl) ListByCompanyMonth(ctx context.Context, companyID string, month, year int) ([]payroll.PayrollItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollItemColumns + `
		FROM payroll_items
		WHERE company_id = $1 AND month = $2 AND year = $3
		ORDER BY created_at ASC`

	rows, err := q.Query(ctx, query, companyID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []payroll.PayrollItem
	for rows.Next() {
		item, err := scanPayrollItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
