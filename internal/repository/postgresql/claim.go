package postgresql

import (
	"context"
	"errors"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type claimRepositoryImpl struct {
	db *database.DB
}

func NewClaimRepository(db *database.DB) claim.ClaimRepository {
	return &claimRepositoryImpl{db: db}
}

const claimColumns = `
	id, employee_id, company_id, date, category,
	amount, submitted_amount, receipt_url,
	ai_extracted_amount, ai_confidence, receipt_hash, amount_mismatch_ignored,
	status, pending_reason, auto_approved,
	approved_by, approved_at, rejection_reason, linked_payroll_item_id,
	created_at, updated_at`

func scanClaim(row pgx.Row) (claim.Claim, error) {
	var c claim.Claim
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.CompanyID, &c.Date, &c.Category,
		&c.Amount, &c.SubmittedAmount, &c.ReceiptURL,
		&c.AIExtractedAmount, &c.AIConfidence, &c.ReceiptHash, &c.AmountMismatchIgnored,
		&c.Status, &c.PendingReason, &c.AutoApproved,
		&c.ApprovedBy, &c.ApprovedAt, &c.RejectionReason, &c.LinkedPayrollItemID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements claim.ClaimRepository.
func (r *claimRepositoryImpl) Create(ctx context.Context, c claim.Claim) (claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO claims (
			id, employee_id, company_id, date, category,
			amount, submitted_amount, receipt_url,
			ai_extracted_amount, ai_confidence, receipt_hash, amount_mismatch_ignored,
			status, pending_reason, auto_approved,
			approved_by, approved_at,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14,
			$15, $16,
			now(), now()
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.EmployeeID, c.CompanyID, c.Date, c.Category,
		c.Amount, c.SubmittedAmount, c.ReceiptURL,
		c.AIExtractedAmount, c.AIConfidence, c.ReceiptHash, c.AmountMismatchIgnored,
		c.Status, c.PendingReason, c.AutoApproved,
		c.ApprovedBy, c.ApprovedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return claim.Claim{}, err
	}
	return c, nil
}

// GetByID implements claim.ClaimRepository.
func (r *claimRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + claimColumns + `
		FROM claims
		WHERE id = $1 AND company_id = $2`

	c, err := scanClaim(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claim.Claim{}, claim.ErrClaimNotFound
		}
		return claim.Claim{}, err
	}
	return c, nil
}

// GetByIDForUpdate implements claim.ClaimRepository.
func (r *claimRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string, companyID string) (claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + claimColumns + `
		FROM claims
		WHERE id = $1 AND company_id = $2
		FOR UPDATE`

	c, err := scanClaim(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claim.Claim{}, claim.ErrClaimNotFound
		}
		return claim.Claim{}, err
	}
	return c, nil
}

// Update implements claim.ClaimRepository.
func (r *claimRepositoryImpl) Update(ctx context.Context, c claim.Claim) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE claims SET
			amount = $2, status = $3, pending_reason = $4, auto_approved = $5,
			amount_mismatch_ignored = $6,
			approved_by = $7, approved_at = $8, rejection_reason = $9,
			updated_at = now()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query,
		c.ID, c.Amount, c.Status, c.PendingReason, c.AutoApproved,
		c.AmountMismatchIgnored,
		c.ApprovedBy, c.ApprovedAt, c.RejectionReason,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return claim.ErrClaimNotFound
	}
	return nil
}

// Delete implements claim.ClaimRepository.
func (r *claimRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM claims
		WHERE id = $1 AND company_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return claim.ErrClaimNotFound
	}
	return nil
}

// ExistsByReceiptHash implements claim.ClaimRepository.
func (r *claimRepositoryImpl) ExistsByReceiptHash(ctx context.Context, employeeID, receiptHash string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM claims
			WHERE employee_id = $1 AND receipt_hash = $2
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, receiptHash).Scan(&exists)
	return exists, err
}

// ListByEmployee implements claim.ClaimRepository.
func (r *claimRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, month, year int) ([]claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + claimColumns + `
		FROM claims
		WHERE employee_id = $1
		  AND date >= make_date($2, $3, 1)
		  AND date < make_date($2, $3, 1) + INTERVAL '1 month'
		ORDER BY date DESC`

	rows, err := q.Query(ctx, query, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []claim.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// ListPendingByEmployeeIDs implements claim.ClaimRepository.
func (r *claimRepositoryImpl) ListPendingByEmployeeIDs(ctx context.Context, companyID string, employeeIDs []string) ([]claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.employee_id, c.company_id, c.date, c.category,
		       c.amount, c.submitted_amount, c.receipt_url,
		       c.ai_extracted_amount, c.ai_confidence, c.receipt_hash, c.amount_mismatch_ignored,
		       c.status, c.pending_reason, c.auto_approved,
		       c.approved_by, c.approved_at, c.rejection_reason, c.linked_payroll_item_id,
		       c.created_at, c.updated_at,
		       e.full_name
		FROM claims c
		INNER JOIN employees e ON e.id = c.employee_id
		WHERE c.company_id = $1 AND c.employee_id = ANY($2) AND c.status = 'pending'
		ORDER BY c.created_at ASC
	`

	rows, err := q.Query(ctx, query, companyID, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []claim.Claim
	for rows.Next() {
		var c claim.Claim
		err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.CompanyID, &c.Date, &c.Category,
			&c.Amount, &c.SubmittedAmount, &c.ReceiptURL,
			&c.AIExtractedAmount, &c.AIConfidence, &c.ReceiptHash, &c.AmountMismatchIgnored,
			&c.Status, &c.PendingReason, &c.AutoApproved,
			&c.ApprovedBy, &c.ApprovedAt, &c.RejectionReason, &c.LinkedPayrollItemID,
			&c.CreatedAt, &c.UpdatedAt,
			&c.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// LockApprovedUnlinked implements claim.ClaimRepository.
func (r *claimRepositoryImpl) LockApprovedUnlinked(ctx context.Context, employeeID string, month, year int) ([]claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + claimColumns + `
		FROM claims
		WHERE employee_id = $1
		  AND date >= make_date($2, $3, 1)
		  AND date < make_date($2, $3, 1) + INTERVAL '1 month'
		  AND status = 'approved' AND linked_payroll_item_id IS NULL
		ORDER BY date ASC
		FOR UPDATE`

	rows, err := q.Query(ctx, query, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []claim.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// StampPayrollItem implements claim.ClaimRepository.
func (r *claimRepositoryImpl) StampPayrollItem(ctx context.Context, ids []string, payrollItemID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE claims
		SET linked_payroll_item_id = $1, updated_at = now()
		WHERE id = ANY($2)
	`
	_, err := q.Exec(ctx, query, payrollItemID, ids)
	return err
}

// ClearPayrollItem implements claim.ClaimRepository.
func (r *claimRepositoryImpl) ClearPayrollItem(ctx context.Context, payrollItemID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE claims
		SET linked_payroll_item_id = NULL, updated_at = now()
		WHERE linked_payroll_item_id = $1
	`
	_, err := q.Exec(ctx, query, payrollItemID)
	return err
}
