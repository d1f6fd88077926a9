package postgresql

import (
	"context"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/schedule"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) schedule.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// HasShiftOn implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) HasShiftOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM shifts
			WHERE employee_id = $1 AND date = $2
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists)
	return exists, err
}

// ListByEmployeeRange implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, outlet_id, date, start_time, end_time
		FROM shifts
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []schedule.Shift
	for rows.Next() {
		var s schedule.Shift
		err := rows.Scan(&s.ID, &s.CompanyID, &s.EmployeeID, &s.OutletID, &s.Date, &s.StartTime, &s.EndTime)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}
