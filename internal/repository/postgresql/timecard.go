package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/timecard"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timecardRepositoryImpl struct {
	db *database.DB
}

func NewTimecardRepository(db *database.DB) timecard.TimecardRepository {
	return &timecardRepositoryImpl{db: db}
}

const timecardColumns = `
	id, employee_id, company_id, date, schedule_id,
	in1_at, in1_latitude, in1_longitude, in1_address, in1_selfie_url, in1_face_detected, in1_face_confidence,
	out1_at, out1_latitude, out1_longitude, out1_address, out1_selfie_url, out1_face_detected, out1_face_confidence,
	in2_at, in2_latitude, in2_longitude, in2_address, in2_selfie_url, in2_face_detected, in2_face_confidence,
	out2_at, out2_latitude, out2_longitude, out2_address, out2_selfie_url, out2_face_detected, out2_face_confidence,
	work_minutes, ot_minutes, ot_flagged, ot_rate,
	status, approval_status, attendance_status,
	approved_by, approved_at, rejection_reason, payroll_item_id,
	created_at, updated_at`

func scanTimecard(row pgx.Row) (timecard.Timecard, error) {
	var tc timecard.Timecard
	err := row.Scan(
		&tc.ID, &tc.EmployeeID, &tc.CompanyID, &tc.Date, &tc.ScheduleID,
		&tc.In1.At, &tc.In1.Latitude, &tc.In1.Longitude, &tc.In1.Address, &tc.In1.SelfieURL, &tc.In1.FaceDetected, &tc.In1.FaceConfidence,
		&tc.Out1.At, &tc.Out1.Latitude, &tc.Out1.Longitude, &tc.Out1.Address, &tc.Out1.SelfieURL, &tc.Out1.FaceDetected, &tc.Out1.FaceConfidence,
		&tc.In2.At, &tc.In2.Latitude, &tc.In2.Longitude, &tc.In2.Address, &tc.In2.SelfieURL, &tc.In2.FaceDetected, &tc.In2.FaceConfidence,
		&tc.Out2.At, &tc.Out2.Latitude, &tc.Out2.Longitude, &tc.Out2.Address, &tc.Out2.SelfieURL, &tc.Out2.FaceDetected, &tc.Out2.FaceConfidence,
		&tc.WorkMinutes, &tc.OTMinutes, &tc.OTFlagged, &tc.OTRate,
		&tc.Status, &tc.ApprovalStatus, &tc.AttendanceStatus,
		&tc.ApprovedBy, &tc.ApprovedAt, &tc.RejectionReason, &tc.PayrollItemID,
		&tc.CreatedAt, &tc.UpdatedAt,
	)
	return tc, err
}

func slotArgs(e timecard.ClockEvent) []any {
	return []any{e.At, e.Latitude, e.Longitude, e.Address, e.SelfieURL, e.FaceDetected, e.FaceConfidence}
}

// Create implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) Create(ctx context.Context, tc timecard.Timecard) (timecard.Timecard, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timecards (
			id, employee_id, company_id, date, schedule_id,
			in1_at, in1_latitude, in1_longitude, in1_address, in1_selfie_url, in1_face_detected, in1_face_confidence,
			out1_at, out1_latitude, out1_longitude, out1_address, out1_selfie_url, out1_face_detected, out1_face_confidence,
			in2_at, in2_latitude, in2_longitude, in2_address, in2_selfie_url, in2_face_detected, in2_face_confidence,
			out2_at, out2_latitude, out2_longitude, out2_address, out2_selfie_url, out2_face_detected, out2_face_confidence,
			work_minutes, ot_minutes, ot_flagged, ot_rate,
			status, approval_status, attendance_status,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25,
			$26, $27, $28, $29, $30, $31, $32,
			$33, $34, $35, $36,
			$37, $38, $39,
			now(), now()
		)
		RETURNING id, created_at, updated_at
	`

	args := []any{tc.EmployeeID, tc.CompanyID, tc.Date, tc.ScheduleID}
	args = append(args, slotArgs(tc.In1)...)
	args = append(args, slotArgs(tc.Out1)...)
	args = append(args, slotArgs(tc.In2)...)
	args = append(args, slotArgs(tc.Out2)...)
	args = append(args, tc.WorkMinutes, tc.OTMinutes, tc.OTFlagged, tc.OTRate,
		tc.Status, tc.ApprovalStatus, tc.AttendanceStatus)

	err := q.QueryRow(ctx, query, args...).Scan(&tc.ID, &tc.CreatedAt, &tc.UpdatedAt)
	if err != nil {
		return timecard.Timecard{}, err
	}
	return tc, nil
}

// GetByID implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (timecard.Timecard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE id = $1 AND company_id = $2`

	tc, err := scanTimecard(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timecard.Timecard{}, timecard.ErrTimecardNotFound
		}
		return timecard.Timecard{}, err
	}
	return tc, nil
}

// GetByEmployeeAndDate implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*timecard.Timecard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE employee_id = $1 AND date = $2 AND company_id = $3`

	tc, err := scanTimecard(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tc, nil
}

// GetForUpdate implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string, date time.Time, companyID string) (*timecard.Timecard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
		FOR UPDATE`

	tc, err := scanTimecard(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tc, nil
}

// GetByIDForUpdate implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string, companyID string) (timecard.Timecard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE id = $1 AND company_id = $2
		FOR UPDATE`

	tc, err := scanTimecard(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timecard.Timecard{}, timecard.ErrTimecardNotFound
		}
		return timecard.Timecard{}, err
	}
	return tc, nil
}

// Update implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) Update(ctx context.Context, tc timecard.Timecard) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timecards SET
			in1_at = $2, in1_latitude = $3, in1_longitude = $4, in1_address = $5, in1_selfie_url = $6, in1_face_detected = $7, in1_face_confidence = $8,
			out1_at = $9, out1_latitude = $10, out1_longitude = $11, out1_address = $12, out1_selfie_url = $13, out1_face_detected = $14, out1_face_confidence = $15,
			in2_at = $16, in2_latitude = $17, in2_longitude = $18, in2_address = $19, in2_selfie_url = $20, in2_face_detected = $21, in2_face_confidence = $22,
			out2_at = $23, out2_latitude = $24, out2_longitude = $25, out2_address = $26, out2_selfie_url = $27, out2_face_detected = $28, out2_face_confidence = $29,
			work_minutes = $30, ot_minutes = $31, ot_flagged = $32, ot_rate = $33,
			status = $34, approval_status = $35, attendance_status = $36,
			approved_by = $37, approved_at = $38, rejection_reason = $39,
			updated_at = now()
		WHERE id = $1
	`

	args := []any{tc.ID}
	args = append(args, slotArgs(tc.In1)...)
	args = append(args, slotArgs(tc.Out1)...)
	args = append(args, slotArgs(tc.In2)...)
	args = append(args, slotArgs(tc.Out2)...)
	args = append(args, tc.WorkMinutes, tc.OTMinutes, tc.OTFlagged, tc.OTRate,
		tc.Status, tc.ApprovalStatus, tc.AttendanceStatus,
		tc.ApprovedBy, tc.ApprovedAt, tc.RejectionReason)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return timecard.ErrTimecardNotFound
	}
	return nil
}

// History implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) History(ctx context.Context, employeeID string, month int, year int, companyID string) ([]timecard.Timecard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE employee_id = $1 AND company_id = $2
		  AND date >= make_date($3, $4, 1)
		  AND date < make_date($3, $4, 1) + INTERVAL '1 month'
		ORDER BY date DESC`

	rows, err := q.Query(ctx, query, employeeID, companyID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []timecard.Timecard
	for rows.Next() {
		tc, err := scanTimecard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, tc)
	}
	return cards, rows.Err()
}

// ListPendingByEmployeeIDs implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) ListPendingByEmployeeIDs(ctx context.Context, companyID string, employeeIDs []string) ([]timecard.Timecard, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tc.id, tc.employee_id, tc.company_id, tc.date, tc.schedule_id,
		       tc.in1_at, tc.in1_latitude, tc.in1_longitude, tc.in1_address, tc.in1_selfie_url, tc.in1_face_detected, tc.in1_face_confidence,
		       tc.out1_at, tc.out1_latitude, tc.out1_longitude, tc.out1_address, tc.out1_selfie_url, tc.out1_face_detected, tc.out1_face_confidence,
		       tc.in2_at, tc.in2_latitude, tc.in2_longitude, tc.in2_address, tc.in2_selfie_url, tc.in2_face_detected, tc.in2_face_confidence,
		       tc.out2_at, tc.out2_latitude, tc.out2_longitude, tc.out2_address, tc.out2_selfie_url, tc.out2_face_detected, tc.out2_face_confidence,
		       tc.work_minutes, tc.ot_minutes, tc.ot_flagged, tc.ot_rate,
		       tc.status, tc.approval_status, tc.attendance_status,
		       tc.approved_by, tc.approved_at, tc.rejection_reason, tc.payroll_item_id,
		       tc.created_at, tc.updated_at,
		       e.full_name
		FROM timecards tc
		INNER JOIN employees e ON e.id = tc.employee_id
		WHERE tc.company_id = $1 AND tc.employee_id = ANY($2)
		  AND tc.status = 'completed' AND tc.approval_status = 'pending'
		ORDER BY tc.date ASC
	`

	rows, err := q.Query(ctx, query, companyID, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []timecard.Timecard
	for rows.Next() {
		var tc timecard.Timecard
		err := rows.Scan(
			&tc.ID, &tc.EmployeeID, &tc.CompanyID, &tc.Date, &tc.ScheduleID,
			&tc.In1.At, &tc.In1.Latitude, &tc.In1.Longitude, &tc.In1.Address, &tc.In1.SelfieURL, &tc.In1.FaceDetected, &tc.In1.FaceConfidence,
			&tc.Out1.At, &tc.Out1.Latitude, &tc.Out1.Longitude, &tc.Out1.Address, &tc.Out1.SelfieURL, &tc.Out1.FaceDetected, &tc.Out1.FaceConfidence,
			&tc.In2.At, &tc.In2.Latitude, &tc.In2.Longitude, &tc.In2.Address, &tc.In2.SelfieURL, &tc.In2.FaceDetected, &tc.In2.FaceConfidence,
			&tc.Out2.At, &tc.Out2.Latitude, &tc.Out2.Longitude, &tc.Out2.Address, &tc.Out2.SelfieURL, &tc.Out2.FaceDetected, &tc.Out2.FaceConfidence,
			&tc.WorkMinutes, &tc.OTMinutes, &tc.OTFlagged, &tc.OTRate,
			&tc.Status, &tc.ApprovalStatus, &tc.AttendanceStatus,
			&tc.ApprovedBy, &tc.ApprovedAt, &tc.RejectionReason, &tc.PayrollItemID,
			&tc.CreatedAt, &tc.UpdatedAt,
			&tc.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, tc)
	}
	return cards, rows.Err()
}

// LockApprovedUnlinked implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) LockApprovedUnlinked(ctx context.Context, employeeID string, month, year int) ([]timecard.Timecard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE employee_id = $1
		  AND date >= make_date($2, $3, 1)
		  AND date < make_date($2, $3, 1) + INTERVAL '1 month'
		  AND approval_status = 'approved' AND payroll_item_id IS NULL
		ORDER BY date ASC
		FOR UPDATE`

	rows, err := q.Query(ctx, query, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []timecard.Timecard
	for rows.Next() {
		tc, err := scanTimecard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, tc)
	}
	return cards, rows.Err()
}

// StampPayrollItem implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) StampPayrollItem(ctx context.Context, ids []string, payrollItemID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timecards
		SET payroll_item_id = $1, updated_at = now()
		WHERE id = ANY($2)
	`
	_, err := q.Exec(ctx, query, payrollItemID, ids)
	return err
}

// ClearPayrollItem implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) ClearPayrollItem(ctx context.Context, payrollItemID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timecards
		SET payroll_item_id = NULL, updated_at = now()
		WHERE payroll_item_id = $1
	`
	_, err := q.Exec(ctx, query, payrollItemID)
	return err
}

// ListStaleInProgress implements timecard.TimecardRepository.
func (r *timecardRepositoryImpl) ListStaleInProgress(ctx context.Context, before time.Time) ([]timecard.Timecard, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timecardColumns + `
		FROM timecards
		WHERE status = 'in_progress' AND date < $1
		ORDER BY date ASC`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []timecard.Timecard
	for rows.Next() {
		tc, err := scanTimecard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, tc)
	}
	return cards, rows.Err()
}
