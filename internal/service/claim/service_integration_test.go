package claim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/domain/notification"
	"github.com/gajihub/hr-backend-go/internal/domain/payroll"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/pkg/sse"
	"github.com/gajihub/hr-backend-go/internal/pkg/storage"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
	"github.com/gajihub/hr-backend-go/internal/service/approval"
	"github.com/gajihub/hr-backend-go/internal/service/file"
	notifsvc "github.com/gajihub/hr-backend-go/internal/service/notification"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func createClaimTestCompany(t *testing.T, ctx context.Context, db *database.DB) string {
	t.Helper()
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO companies (
			id, name, grouping_mode, timezone, standard_work_minutes,
			auto_approve_threshold, mismatch_tolerance, created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, 'department', 'Asia/Kuala_Lumpur', 480, 50, 5, now(), now()
		)
		RETURNING id
	`, fmt.Sprintf("Claim Test Co %d", time.Now().UnixNano())).Scan(&id)
	require.NoError(t, err)
	return id
}

func createClaimTestEmployee(t *testing.T, ctx context.Context, db *database.DB, companyID, role string) string {
	t.Helper()
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (
			id, company_id, full_name, role, gender, join_date, work_type, status,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, 'female', $4, 'full_time', 'active', now(), now()
		)
		RETURNING id
	`, companyID, fmt.Sprintf("%s %d", role, time.Now().UnixNano()), role,
		time.Now().AddDate(-2, 0, 0)).Scan(&id)
	require.NoError(t, err)
	return id
}

func createClaimTestRule(t *testing.T, ctx context.Context, db *database.DB, rule claim.CategoryRule) claim.CategoryRule {
	t.Helper()
	created, err := postgresql.NewCategoryRuleRepository(db).Create(ctx, rule)
	require.NoError(t, err)
	return created
}

func newClaimTestService(t *testing.T, db *database.DB) *Service {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(
		db,
		postgresql.NewClaimRepository(db),
		postgresql.NewCategoryRuleRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewCompanyRepository(db),
		file.NewService(store, 5*time.Second, logger),
		notifsvc.NewService(postgresql.NewNotificationRepository(db), sse.NewHub(), logger),
		approval.NewResolver(),
	)
}

func uniqueReceiptHash() string {
	return fmt.Sprintf("hash-%d", time.Now().UnixNano())
}

func notificationTypes(t *testing.T, ctx context.Context, db *database.DB, employeeID string) []notification.Type {
	t.Helper()
	rows, err := postgresql.NewNotificationRepository(db).ListByEmployee(ctx, employeeID, false)
	require.NoError(t, err)
	types := make([]notification.Type, 0, len(rows))
	for _, n := range rows {
		types = append(types, n.Type)
	}
	return types
}

func TestClaimSubmitAutoApprovesAndNotifies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := claimTestDB(t)
	svc := newClaimTestService(t, db)

	companyID := createClaimTestCompany(t, ctx, db)
	empID := createClaimTestEmployee(t, ctx, db, companyID, "staff")
	createClaimTestRule(t, ctx, db, claim.CategoryRule{
		CompanyID: companyID, Category: "parking",
		MaxAmount: decPtr("20.00"), AutoCap: true,
	})

	extracted := "15.00"
	created, err := svc.Submit(ctx,
		jwt.Actor{EmployeeID: empID, CompanyID: companyID, Role: "staff"},
		&claim.SubmitClaimRequest{
			Date:     time.Now().Format("2006-01-02"),
			Category: "parking",
			Amount:   "15.00",
			AI: &claim.AISignals{
				ExtractedAmount: &extracted,
				Confidence:      "high",
				ReceiptHash:     uniqueReceiptHash(),
			},
		})
	require.NoError(t, err)
	assert.Equal(t, claim.StatusApproved, created.Status)
	assert.True(t, created.AutoApproved)
	require.NotNil(t, created.ApprovedAt)

	assert.Contains(t, notificationTypes(t, ctx, db, empID), notification.TypeClaimDecided,
		"auto-approval notifies the claimant")
}

func TestClaimSubmitPendingNotifies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := claimTestDB(t)
	svc := newClaimTestService(t, db)

	companyID := createClaimTestCompany(t, ctx, db)
	empID := createClaimTestEmployee(t, ctx, db, companyID, "staff")
	createClaimTestRule(t, ctx, db, claim.CategoryRule{
		CompanyID: companyID, Category: "other",
	})

	created, err := svc.Submit(ctx,
		jwt.Actor{EmployeeID: empID, CompanyID: companyID, Role: "staff"},
		&claim.SubmitClaimRequest{
			Date:     time.Now().Format("2006-01-02"),
			Category: "other",
			Amount:   "40.00",
		})
	require.NoError(t, err)
	assert.Equal(t, claim.StatusPending, created.Status)
	assert.False(t, created.AutoApproved)

	assert.Contains(t, notificationTypes(t, ctx, db, empID), notification.TypeClaimSubmitted)
}

func TestClaimDuplicateReceiptConflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := claimTestDB(t)
	svc := newClaimTestService(t, db)

	companyID := createClaimTestCompany(t, ctx, db)
	empID := createClaimTestEmployee(t, ctx, db, companyID, "staff")
	createClaimTestRule(t, ctx, db, claim.CategoryRule{
		CompanyID: companyID, Category: "meal",
		MaxAmount: decPtr("30.00"), AutoCap: true,
	})

	hash := uniqueReceiptHash()
	actor := jwt.Actor{EmployeeID: empID, CompanyID: companyID, Role: "staff"}
	submit := func() error {
		extracted := "12.00"
		_, err := svc.Submit(ctx, actor, &claim.SubmitClaimRequest{
			Date:     time.Now().Format("2006-01-02"),
			Category: "meal",
			Amount:   "12.00",
			AI: &claim.AISignals{
				ExtractedAmount: &extracted,
				Confidence:      "high",
				ReceiptHash:     hash,
			},
		})
		return err
	}

	require.NoError(t, submit())
	assert.ErrorIs(t, submit(), claim.ErrDuplicateReceipt)
}

func TestClaimLinkedToPayrollIsImmutable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := claimTestDB(t)
	svc := newClaimTestService(t, db)

	companyID := createClaimTestCompany(t, ctx, db)
	empID := createClaimTestEmployee(t, ctx, db, companyID, "staff")
	adminID := createClaimTestEmployee(t, ctx, db, companyID, "manager")
	createClaimTestRule(t, ctx, db, claim.CategoryRule{
		CompanyID: companyID, Category: "other",
	})

	created, err := svc.Submit(ctx,
		jwt.Actor{EmployeeID: empID, CompanyID: companyID, Role: "staff"},
		&claim.SubmitClaimRequest{
			Date:     time.Now().Format("2006-01-02"),
			Category: "other",
			Amount:   "75.00",
		})
	require.NoError(t, err)
	require.Equal(t, claim.StatusPending, created.Status)

	item, err := postgresql.NewPayrollItemRepository(db).Create(ctx, payroll.PayrollItem{
		CompanyID: companyID, EmployeeID: empID, Month: 1, Year: 2031,
		ClaimsTotal: decimal.Zero, AdvanceDeduction: decimal.Zero,
	})
	require.NoError(t, err)
	claimRepo := postgresql.NewClaimRepository(db)
	require.NoError(t, claimRepo.StampPayrollItem(ctx, []string{created.ID}, item.ID))

	admin := jwt.Actor{EmployeeID: adminID, CompanyID: companyID, Role: "manager", IsAdmin: true}
	_, err = svc.Approve(ctx, admin, created.ID)
	assert.ErrorIs(t, err, payroll.ErrLinkedToPayroll)
	_, err = svc.Revert(ctx, admin, created.ID)
	assert.ErrorIs(t, err, payroll.ErrLinkedToPayroll)
	assert.ErrorIs(t, svc.Delete(ctx, admin, created.ID), payroll.ErrLinkedToPayroll)

	outcomes := svc.BulkApprove(ctx, admin, []string{created.ID})
	require.Len(t, outcomes, 1)
	assert.Equal(t, "skipped", outcomes[0].Status)

	// Unstamping releases the row again.
	require.NoError(t, claimRepo.ClearPayrollItem(ctx, item.ID))
	approved, err := svc.Approve(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, claim.StatusApproved, approved.Status)
}

func TestClaimRevertNotifiesClaimant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := claimTestDB(t)
	svc := newClaimTestService(t, db)

	companyID := createClaimTestCompany(t, ctx, db)
	empID := createClaimTestEmployee(t, ctx, db, companyID, "staff")
	adminID := createClaimTestEmployee(t, ctx, db, companyID, "manager")
	createClaimTestRule(t, ctx, db, claim.CategoryRule{
		CompanyID: companyID, Category: "other",
	})

	created, err := svc.Submit(ctx,
		jwt.Actor{EmployeeID: empID, CompanyID: companyID, Role: "staff"},
		&claim.SubmitClaimRequest{
			Date:     time.Now().Format("2006-01-02"),
			Category: "other",
			Amount:   "60.00",
		})
	require.NoError(t, err)

	admin := jwt.Actor{EmployeeID: adminID, CompanyID: companyID, Role: "manager", IsAdmin: true}
	_, err = svc.Approve(ctx, admin, created.ID)
	require.NoError(t, err)

	reverted, err := svc.Revert(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, claim.StatusPending, reverted.Status)
	assert.False(t, reverted.AutoApproved)
	assert.Nil(t, reverted.ApprovedBy)

	// submit, approve and revert each notified the claimant
	types := notificationTypes(t, ctx, db, empID)
	assert.Len(t, types, 3)
}
