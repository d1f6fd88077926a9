package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, employee_id, company_id, leave_type_id, start_date, end_date,
	total_days, half_day, reason, attachment_url, status, approval_level,
	level1_by, level1_at, level2_by, level2_at, level3_by, level3_at,
	rejection_reason, payroll_item_id, created_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.CompanyID,
		&lr.LeaveTypeID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.TotalDays,
		&lr.HalfDay,
		&lr.Reason,
		&lr.AttachmentURL,
		&lr.Status,
		&lr.ApprovalLevel,
		&lr.Level1By,
		&lr.Level1At,
		&lr.Level2By,
		&lr.Level2At,
		&lr.Level3By,
		&lr.Level3At,
		&lr.RejectionReason,
		&lr.PayrollItemID,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, company_id, leave_type_id,
			start_date, end_date, total_days, half_day, reason,
			attachment_url, status, approval_level,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3,
			$4, $5, $6, $7, $8,
			$9, $10, $11,
			now(), now()
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.CompanyID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.TotalDays, request.HalfDay, request.Reason,
		request.AttachmentURL, request.Status, request.ApprovalLevel,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1 AND company_id = $2`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1 AND company_id = $2
		FOR UPDATE`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			status = $2, approval_level = $3,
			level1_by = $4, level1_at = $5,
			level2_by = $6, level2_at = $7,
			level3_by = $8, level3_at = $9,
			rejection_reason = $10,
			updated_at = now()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query,
		request.ID, request.Status, request.ApprovalLevel,
		request.Level1By, request.Level1At,
		request.Level2By, request.Level2At,
		request.Level3By, request.Level3At,
		request.RejectionReason,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_requests
		WHERE id = $1 AND company_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// HasOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3 AND end_date >= $2
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists)
	return exists, err
}

// CountApprovedInYear implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountApprovedInYear(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE employee_id = $1 AND leave_type_id = $2
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM start_date) = $3
	`
	var count int
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(&count)
	return count, err
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.company_id, lr.leave_type_id, lr.start_date, lr.end_date,
		       lr.total_days, lr.half_day, lr.reason, lr.attachment_url, lr.status, lr.approval_level,
		       lr.level1_by, lr.level1_at, lr.level2_by, lr.level2_at, lr.level3_by, lr.level3_at,
		       lr.rejection_reason, lr.payroll_item_id, lr.created_at, lr.updated_at,
		       lt.code, lt.is_paid
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.employee_id = $1 AND EXTRACT(YEAR FROM lr.start_date) = $2
		ORDER BY lr.start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequestsWithType(rows)
}

func collectRequestsWithType(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate,
			&lr.TotalDays, &lr.HalfDay, &lr.Reason, &lr.AttachmentURL, &lr.Status, &lr.ApprovalLevel,
			&lr.Level1By, &lr.Level1At, &lr.Level2By, &lr.Level2At, &lr.Level3By, &lr.Level3At,
			&lr.RejectionReason, &lr.PayrollItemID, &lr.CreatedAt, &lr.UpdatedAt,
			&lr.LeaveTypeCode, &lr.IsPaid,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// ListPendingForLevel implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPendingForLevel(ctx context.Context, companyID string, level int, employeeIDs []string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.company_id, lr.leave_type_id, lr.start_date, lr.end_date,
		       lr.total_days, lr.half_day, lr.reason, lr.attachment_url, lr.status, lr.approval_level,
		       lr.level1_by, lr.level1_at, lr.level2_by, lr.level2_at, lr.level3_by, lr.level3_at,
		       lr.rejection_reason, lr.payroll_item_id, lr.created_at, lr.updated_at,
		       lt.code, lt.is_paid, e.full_name
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lt.id = lr.leave_type_id
		INNER JOIN employees e ON e.id = lr.employee_id
		WHERE lr.company_id = $1 AND lr.status = 'pending' AND lr.approval_level = $2
		  AND lr.employee_id = ANY($3)
		ORDER BY lr.created_at ASC
	`

	rows, err := q.Query(ctx, query, companyID, level, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequestsWithEmployee(rows)
}

func collectRequestsWithEmployee(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate,
			&lr.TotalDays, &lr.HalfDay, &lr.Reason, &lr.AttachmentURL, &lr.Status, &lr.ApprovalLevel,
			&lr.Level1By, &lr.Level1At, &lr.Level2By, &lr.Level2At, &lr.Level3By, &lr.Level3At,
			&lr.RejectionReason, &lr.PayrollItemID, &lr.CreatedAt, &lr.UpdatedAt,
			&lr.LeaveTypeCode, &lr.IsPaid, &lr.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// ListPendingForAdmin implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPendingForAdmin(ctx context.Context, companyID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.company_id, lr.leave_type_id, lr.start_date, lr.end_date,
		       lr.total_days, lr.half_day, lr.reason, lr.attachment_url, lr.status, lr.approval_level,
		       lr.level1_by, lr.level1_at, lr.level2_by, lr.level2_at, lr.level3_by, lr.level3_at,
		       lr.rejection_reason, lr.payroll_item_id, lr.created_at, lr.updated_at,
		       lt.code, lt.is_paid, e.full_name
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lt.id = lr.leave_type_id
		INNER JOIN employees e ON e.id = lr.employee_id
		WHERE lr.company_id = $1 AND lr.status = 'pending' AND lr.approval_level = 3
		ORDER BY lr.created_at ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequestsWithEmployee(rows)
}

// LockApprovedUnpaidIntersecting implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) LockApprovedUnpaidIntersecting(ctx context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.company_id, lr.leave_type_id, lr.start_date, lr.end_date,
		       lr.total_days, lr.half_day, lr.reason, lr.attachment_url, lr.status, lr.approval_level,
		       lr.level1_by, lr.level1_at, lr.level2_by, lr.level2_at, lr.level3_by, lr.level3_at,
		       lr.rejection_reason, lr.payroll_item_id, lr.created_at, lr.updated_at
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.employee_id = $1 AND lr.status = 'approved'
		  AND lt.is_paid = false
		  AND lr.payroll_item_id IS NULL
		  AND lr.start_date <= $3 AND lr.end_date >= $2
		ORDER BY lr.start_date ASC
		FOR UPDATE OF lr
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// StampPayrollItem implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) StampPayrollItem(ctx context.Context, ids []string, payrollItemID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET payroll_item_id = $1, updated_at = now()
		WHERE id = ANY($2)
	`
	_, err := q.Exec(ctx, query, payrollItemID, ids)
	return err
}

// ClearPayrollItem implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ClearPayrollItem(ctx context.Context, payrollItemID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET payroll_item_id = NULL, updated_at = now()
		WHERE payroll_item_id = $1
	`
	_, err := q.Exec(ctx, query, payrollItemID)
	return err
}
