package postgresql

import (
	"context"
	"errors"

	"github.com/gajihub/hr-backend-go/internal/domain/advance"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type advanceRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepositoryImpl{db: db}
}

const advanceColumns = `
	id, company_id, employee_id, amount, method, installment_amount,
	first_deduction_month, first_deduction_year, total_deducted,
	status, reason, created_at, updated_at`

func scanAdvance(row pgx.Row) (advance.Advance, error) {
	var a advance.Advance
	err := row.Scan(
		&a.ID,
		&a.CompanyID,
		&a.EmployeeID,
		&a.Amount,
		&a.Method,
		&a.InstallmentAmount,
		&a.FirstDeductionMonth,
		&a.FirstDeductionYear,
		&a.TotalDeducted,
		&a.Status,
		&a.Reason,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_advances (
			id, company_id, employee_id, amount, method, installment_amount,
			first_deduction_month, first_deduction_year, total_deducted,
			status, reason, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now()
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.CompanyID, a.EmployeeID, a.Amount, a.Method, a.InstallmentAmount,
		a.FirstDeductionMonth, a.FirstDeductionYear, a.TotalDeducted,
		a.Status, a.Reason,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return advance.Advance{}, err
	}
	return a, nil
}

// GetByID implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + advanceColumns + `
		FROM salary_advances
		WHERE id = $1 AND company_id = $2`

	a, err := scanAdvance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, err
	}
	return a, nil
}

// GetByIDForUpdate implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string, companyID string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + advanceColumns + `
		FROM salary_advances
		WHERE id = $1 AND company_id = $2
		FOR UPDATE`

	a, err := scanAdvance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, err
	}
	return a, nil
}

// Update implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) Update(ctx context.Context, a advance.Advance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_advances SET
			total_deducted = $2, status = $3, updated_at = now()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, a.ID, a.TotalDeducted, a.Status)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return advance.ErrAdvanceNotFound
	}
	return nil
}

// ListByEmployee implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + advanceColumns + `
		FROM salary_advances
		WHERE employee_id = $1
		ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}
	return advances, rows.Err()
}

// LockActiveDue implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) LockActiveDue(ctx context.Context, employeeID string, month, year int) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + advanceColumns + `
		FROM salary_advances
		WHERE employee_id = $1 AND status = 'active'
		  AND (first_deduction_year < $3
		       OR (first_deduction_year = $3 AND first_deduction_month <= $2))
		ORDER BY created_at ASC
		FOR UPDATE`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}
	return advances, rows.Err()
}

// CreateDeduction implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) CreateDeduction(ctx context.Context, d advance.Deduction) (advance.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO advance_deductions (
			id, advance_id, payroll_item_id, amount, month, year, created_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, now()
		)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		d.AdvanceID, d.PayrollItemID, d.Amount, d.Month, d.Year,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return advance.Deduction{}, err
	}
	return d, nil
}

// ListDeductionsByPayrollItem implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) ListDeductionsByPayrollItem(ctx context.Context, payrollItemID string) ([]advance.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, advance_id, payroll_item_id, amount, month, year, created_at
		FROM advance_deductions
		WHERE payroll_item_id = $1
	`

	rows, err := q.Query(ctx, query, payrollItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []advance.Deduction
	for rows.Next() {
		var d advance.Deduction
		err := rows.Scan(&d.ID, &d.AdvanceID, &d.PayrollItemID, &d.Amount, &d.Month, &d.Year, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		deductions = append(deductions, d)
	}
	return deductions, rows.Err()
}

// DeleteDeductionsByPayrollItem implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) DeleteDeductionsByPayrollItem(ctx context.Context, payrollItemID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM advance_deductions
		WHERE payroll_item_id = $1
	`
	_, err := q.Exec(ctx, query, payrollItemID)
	return err
}
