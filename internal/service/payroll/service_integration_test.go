package payroll

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/advance"
	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/domain/payroll"
	"github.com/gajihub/hr-backend-go/internal/domain/timecard"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
	advancesvc "github.com/gajihub/hr-backend-go/internal/service/advance"
	"github.com/gajihub/hr-backend-go/internal/service/workingday"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payrollTestDB(t *testing.T) *database.DB {
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

func createPayrollTestCompany(t *testing.T, ctx context.Context, db *database.DB) string {
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
	`, fmt.Sprintf("Payroll Test Co %d", time.Now().UnixNano())).Scan(&id)
	require.NoError(t, err)
	return id
}

func createPayrollTestEmployee(t *testing.T, ctx context.Context, db *database.DB, companyID string) string {
	t.Helper()
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (
			id, company_id, full_name, role, gender, join_date, work_type, status,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, 'staff', 'male', $3, 'full_time', 'active', now(), now()
		)
		RETURNING id
	`, companyID, fmt.Sprintf("payee %d", time.Now().UnixNano()),
		time.Now().AddDate(-3, 0, 0)).Scan(&id)
	require.NoError(t, err)
	return id
}

func newPayrollTestService(t *testing.T, db *database.DB) *Service {
	t.Helper()
	return NewService(
		db,
		postgresql.NewPayrollItemRepository(db),
		postgresql.NewTimecardRepository(db),
		postgresql.NewClaimRepository(db),
		postgresql.NewLeaveRequestRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewCompanyRepository(db),
		advancesvc.NewService(db, postgresql.NewAdvanceRepository(db),
			postgresql.NewEmployeeRepository(db), postgresql.NewCompanyRepository(db)),
		workingday.NewCalculator(postgresql.NewHolidayRepository(db)),
	)
}

func firstMondayOf(year int, month time.Month) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func intP(v int) *int { return &v }

func TestPayrollLinkFreezesAndUnlinkReleases(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := payrollTestDB(t)
	svc := newPayrollTestService(t, db)

	const year = 2031
	const month = time.March
	monday := firstMondayOf(year, month)

	companyID := createPayrollTestCompany(t, ctx, db)
	empID := createPayrollTestEmployee(t, ctx, db, companyID)

	timecardRepo := postgresql.NewTimecardRepository(db)
	tc, err := timecardRepo.Create(ctx, timecard.Timecard{
		EmployeeID: empID, CompanyID: companyID, Date: monday,
		WorkMinutes: intP(480), OTMinutes: intP(30), OTFlagged: true,
		Status: timecard.StatusCompleted, ApprovalStatus: timecard.ApprovalApproved,
	})
	require.NoError(t, err)

	claimRepo := postgresql.NewClaimRepository(db)
	cl, err := claimRepo.Create(ctx, claim.Claim{
		EmployeeID: empID, CompanyID: companyID,
		Date: monday.AddDate(0, 0, 1), Category: "meal",
		Amount:          decimal.RequireFromString("40.00"),
		SubmittedAmount: decimal.RequireFromString("40.00"),
		Status:          claim.StatusApproved,
	})
	require.NoError(t, err)

	unpaidType, err := postgresql.NewLeaveTypeRepository(db).Create(ctx, leave.LeaveType{
		CompanyID: companyID, Code: "UNPAID", Name: "Unpaid Leave",
	})
	require.NoError(t, err)
	requestRepo := postgresql.NewLeaveRequestRepository(db)
	lr, err := requestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: empID, CompanyID: companyID, LeaveTypeID: unpaidType.ID,
		StartDate: monday, EndDate: monday.AddDate(0, 0, 2), TotalDays: 3,
		Status: leave.RequestApproved, ApprovalLevel: leave.LevelAdmin,
	})
	require.NoError(t, err)

	advanceRepo := postgresql.NewAdvanceRepository(db)
	installment := decimal.RequireFromString("100.00")
	adv, err := advanceRepo.Create(ctx, advance.Advance{
		CompanyID: companyID, EmployeeID: empID,
		Amount: decimal.RequireFromString("300.00"),
		Method: advance.MethodInstallment, InstallmentAmount: &installment,
		FirstDeductionMonth: int(month), FirstDeductionYear: year,
		TotalDeducted: decimal.Zero, Status: advance.StatusActive,
	})
	require.NoError(t, err)

	admin := jwt.Actor{EmployeeID: empID, CompanyID: companyID, Role: "manager", IsAdmin: true}
	item, err := svc.Link(ctx, admin, &payroll.LinkRequest{
		EmployeeID: empID, Month: int(month), Year: year,
	})
	require.NoError(t, err)
	assert.Equal(t, 480, item.WorkMinutes)
	assert.Equal(t, 30, item.OTMinutes)
	assert.Equal(t, "40.00", item.ClaimsTotal.StringFixed(2))
	assert.Equal(t, 3.0, item.UnpaidLeaveDays, "Mon-Wed are all working days")
	assert.Equal(t, "100.00", item.AdvanceDeduction.StringFixed(2))

	// Everything the item aggregates is stamped with its id.
	lockedCard, err := timecardRepo.GetByID(ctx, tc.ID, companyID)
	require.NoError(t, err)
	require.NotNil(t, lockedCard.PayrollItemID)
	assert.Equal(t, item.ID, *lockedCard.PayrollItemID)

	lockedClaim, err := claimRepo.GetByID(ctx, cl.ID, companyID)
	require.NoError(t, err)
	require.NotNil(t, lockedClaim.LinkedPayrollItemID)
	assert.Equal(t, item.ID, *lockedClaim.LinkedPayrollItemID)

	lockedRequest, err := requestRepo.GetByID(ctx, lr.ID, companyID)
	require.NoError(t, err)
	require.NotNil(t, lockedRequest.PayrollItemID)

	deducted, err := advanceRepo.GetByID(ctx, adv.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", deducted.TotalDeducted.StringFixed(2))
	assert.Equal(t, "200.00", deducted.Remaining().StringFixed(2))

	// One item per employee-month.
	_, err = svc.Link(ctx, admin, &payroll.LinkRequest{
		EmployeeID: empID, Month: int(month), Year: year,
	})
	assert.ErrorIs(t, err, payroll.ErrAlreadyLinked)

	require.NoError(t, svc.Unlink(ctx, admin, item.ID))

	releasedCard, err := timecardRepo.GetByID(ctx, tc.ID, companyID)
	require.NoError(t, err)
	assert.Nil(t, releasedCard.PayrollItemID)

	releasedClaim, err := claimRepo.GetByID(ctx, cl.ID, companyID)
	require.NoError(t, err)
	assert.Nil(t, releasedClaim.LinkedPayrollItemID)

	releasedRequest, err := requestRepo.GetByID(ctx, lr.ID, companyID)
	require.NoError(t, err)
	assert.Nil(t, releasedRequest.PayrollItemID)

	refunded, err := advanceRepo.GetByID(ctx, adv.ID, companyID)
	require.NoError(t, err)
	assert.True(t, refunded.TotalDeducted.IsZero(), "unlink refunds the deduction")
	assert.Equal(t, advance.StatusActive, refunded.Status)

	_, err = svc.Get(ctx, admin, item.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollItemNotFound)
}

func TestPayrollLinkCompletesInstallmentAdvance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := payrollTestDB(t)
	svc := newPayrollTestService(t, db)

	const year = 2031
	const month = time.April

	companyID := createPayrollTestCompany(t, ctx, db)
	empID := createPayrollTestEmployee(t, ctx, db, companyID)

	// Remaining balance below the installment; the last deduction takes
	// only what is left and closes the advance.
	advanceRepo := postgresql.NewAdvanceRepository(db)
	installment := decimal.RequireFromString("100.00")
	adv, err := advanceRepo.Create(ctx, advance.Advance{
		CompanyID: companyID, EmployeeID: empID,
		Amount: decimal.RequireFromString("250.00"),
		Method: advance.MethodInstallment, InstallmentAmount: &installment,
		FirstDeductionMonth: 1, FirstDeductionYear: year,
		TotalDeducted: decimal.RequireFromString("200.00"),
		Status:        advance.StatusActive,
	})
	require.NoError(t, err)

	admin := jwt.Actor{EmployeeID: empID, CompanyID: companyID, Role: "manager", IsAdmin: true}
	item, err := svc.Link(ctx, admin, &payroll.LinkRequest{
		EmployeeID: empID, Month: int(month), Year: year,
	})
	require.NoError(t, err)
	assert.Equal(t, "50.00", item.AdvanceDeduction.StringFixed(2))

	settled, err := advanceRepo.GetByID(ctx, adv.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, advance.StatusCompleted, settled.Status)
	assert.True(t, settled.Remaining().IsZero())
}
