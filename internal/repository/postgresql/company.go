package postgresql

import (
	"context"
	"errors"

	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, grouping_mode, timezone,
		       standard_work_minutes, auto_approve_threshold, mismatch_tolerance,
		       created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.GroupingMode,
		&c.Timezone,
		&c.StandardWorkMinutes,
		&c.AutoApproveThreshold,
		&c.MismatchTolerance,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}
