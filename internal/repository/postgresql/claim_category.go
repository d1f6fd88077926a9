package postgresql

import (
	"context"
	"errors"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type categoryRuleRepositoryImpl struct {
	db *database.DB
}

func NewCategoryRuleRepository(db *database.DB) claim.CategoryRuleRepository {
	return &categoryRuleRepositoryImpl{db: db}
}

// GetByCategory implements claim.CategoryRuleRepository.
func (r *categoryRuleRepositoryImpl) GetByCategory(ctx context.Context, companyID, category string) (claim.CategoryRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, category, max_amount, auto_cap, receipt_required,
		       created_at, updated_at
		FROM claim_categories
		WHERE company_id = $1 AND category = $2
	`

	var rule claim.CategoryRule
	err := q.QueryRow(ctx, query, companyID, category).Scan(
		&rule.ID,
		&rule.CompanyID,
		&rule.Category,
		&rule.MaxAmount,
		&rule.AutoCap,
		&rule.ReceiptRequired,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claim.CategoryRule{}, claim.ErrCategoryNotFound
		}
		return claim.CategoryRule{}, err
	}
	return rule, nil
}

// ListByCompany implements claim.CategoryRuleRepository.
func (r *categoryRuleRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]claim.CategoryRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, category, max_amount, auto_cap, receipt_required,
		       created_at, updated_at
		FROM claim_categories
		WHERE company_id = $1
		ORDER BY category ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []claim.CategoryRule
	for rows.Next() {
		var rule claim.CategoryRule
		err := rows.Scan(
			&rule.ID,
			&rule.CompanyID,
			&rule.Category,
			&rule.MaxAmount,
			&rule.AutoCap,
			&rule.ReceiptRequired,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Create implements claim.CategoryRuleRepository.
func (r *categoryRuleRepositoryImpl) Create(ctx context.Context, rule claim.CategoryRule) (claim.CategoryRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO claim_categories (
			id, company_id, category, max_amount, auto_cap, receipt_required,
			created_at, updated_at
		) VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, company_id, category, max_amount, auto_cap, receipt_required,
		          created_at, updated_at
	`

	var created claim.CategoryRule
	err := q.QueryRow(ctx, query,
		rule.CompanyID,
		rule.Category,
		rule.MaxAmount,
		rule.AutoCap,
		rule.ReceiptRequired,
	).Scan(
		&created.ID,
		&created.CompanyID,
		&created.Category,
		&created.MaxAmount,
		&created.AutoCap,
		&created.ReceiptRequired,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	return created, err
}
