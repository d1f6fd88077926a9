package postgresql

import (
	"context"
	"errors"

	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, full_name, role, gender, join_date, work_type, status,
	outlet_id, department_id, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.FullName,
		&e.Role,
		&e.Gender,
		&e.JoinDate,
		&e.WorkType,
		&e.Status,
		&e.OutletID,
		&e.DepartmentID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// ManagedOutletIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ManagedOutletIDs(ctx context.Context, employeeID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT outlet_id
		FROM outlet_supervisors
		WHERE employee_id = $1
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ActiveSupervisorsByOutlet implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ActiveSupervisorsByOutlet(ctx context.Context, outletID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.company_id, e.full_name, e.role, e.gender, e.join_date,
		       e.work_type, e.status, e.outlet_id, e.department_id,
		       e.created_at, e.updated_at
		FROM employees e
		INNER JOIN outlet_supervisors os ON os.employee_id = e.id
		WHERE os.outlet_id = $1 AND e.role = 'supervisor' AND e.status = 'active'
	`

	rows, err := q.Query(ctx, query, outletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var supervisors []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		supervisors = append(supervisors, e)
	}
	return supervisors, rows.Err()
}

// TeamIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) TeamIDs(ctx context.Context, companyID string, outletIDs []string, departmentID *string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM employees
		WHERE company_id = $1 AND status = 'active'
		  AND (outlet_id = ANY($2) OR (department_id IS NOT NULL AND department_id = $3))
	`

	rows, err := q.Query(ctx, query, companyID, outletIDs, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
