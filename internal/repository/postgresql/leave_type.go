package postgresql

import (
	"context"
	"errors"

	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `
	id, company_id, code, name, is_paid, requires_attachment, is_consecutive,
	max_occurrences_per_year, min_service_days, gender_restriction,
	carries_forward, carry_forward_cap, default_days, steps,
	created_at, updated_at`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(
		&lt.ID,
		&lt.CompanyID,
		&lt.Code,
		&lt.Name,
		&lt.IsPaid,
		&lt.RequiresAttachment,
		&lt.IsConsecutive,
		&lt.MaxOccurrencesPerYear,
		&lt.MinServiceDays,
		&lt.GenderRestriction,
		&lt.CarriesForward,
		&lt.CarryForwardCap,
		&lt.DefaultDays,
		&lt.Steps,
		&lt.CreatedAt,
		&lt.UpdatedAt,
	)
	return lt, err
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveTypeColumns + `
		FROM leave_types
		WHERE id = $1 AND company_id = $2`

	lt, err := scanLeaveType(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// ListByCompany implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveTypeColumns + `
		FROM leave_types
		WHERE company_id = $1
		ORDER BY name ASC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (
			id, company_id, code, name, is_paid, requires_attachment, is_consecutive,
			max_occurrences_per_year, min_service_days, gender_restriction,
			carries_forward, carry_forward_cap, default_days, steps,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			NOW(), NOW()
		)
		RETURNING` + leaveTypeColumns

	return scanLeaveType(q.QueryRow(ctx, query,
		lt.CompanyID,
		lt.Code,
		lt.Name,
		lt.IsPaid,
		lt.RequiresAttachment,
		lt.IsConsecutive,
		lt.MaxOccurrencesPerYear,
		lt.MinServiceDays,
		lt.GenderRestriction,
		lt.CarriesForward,
		lt.CarryForwardCap,
		lt.DefaultDays,
		lt.Steps,
	))
}
