package leave

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/pkg/sse"
	"github.com/gajihub/hr-backend-go/internal/pkg/storage"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
	"github.com/gajihub/hr-backend-go/internal/service/approval"
	"github.com/gajihub/hr-backend-go/internal/service/file"
	notifsvc "github.com/gajihub/hr-backend-go/internal/service/notification"
	"github.com/gajihub/hr-backend-go/internal/service/workingday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaveTestDB(t *testing.T) *database.DB {
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

func createLeaveTestCompany(t *testing.T, ctx context.Context, db *database.DB) string {
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
	`, fmt.Sprintf("Leave Test Co %d", time.Now().UnixNano())).Scan(&id)
	require.NoError(t, err)
	return id
}

func createLeaveTestEmployee(t *testing.T, ctx context.Context, db *database.DB, companyID, role string, joinedYearsAgo int) string {
	t.Helper()
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (
			id, company_id, full_name, role, gender, join_date, work_type, status,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, 'male', $4, 'full_time', 'active', now(), now()
		)
		RETURNING id
	`, companyID, fmt.Sprintf("%s %d", role, time.Now().UnixNano()), role,
		time.Now().AddDate(-joinedYearsAgo, 0, 0)).Scan(&id)
	require.NoError(t, err)
	return id
}

func createLeaveTestType(t *testing.T, ctx context.Context, db *database.DB, lt leave.LeaveType) leave.LeaveType {
	t.Helper()
	created, err := postgresql.NewLeaveTypeRepository(db).Create(ctx, lt)
	require.NoError(t, err)
	return created
}

func newLeaveTestService(t *testing.T, db *database.DB) *RequestService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRequestService(
		db,
		postgresql.NewLeaveRequestRepository(db),
		postgresql.NewLeaveTypeRepository(db),
		postgresql.NewLeaveBalanceRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewCompanyRepository(db),
		workingday.NewCalculator(postgresql.NewHolidayRepository(db)),
		file.NewService(store, 5*time.Second, logger),
		notifsvc.NewService(postgresql.NewNotificationRepository(db), sse.NewHub(), logger),
		approval.NewResolver(),
	)
}

// upcomingMonday returns a Monday far enough ahead that submissions
// are never in the past, kept out of December so a request and the
// following week stay in the same calendar year.
func upcomingMonday() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 40)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	for d.Month() == time.December {
		d = d.AddDate(0, 0, 7)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func TestRequestServiceSubmitAndApprove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := leaveTestDB(t)
	svc := newLeaveTestService(t, db)

	companyID := createLeaveTestCompany(t, ctx, db)
	staffID := createLeaveTestEmployee(t, ctx, db, companyID, "staff", 3)
	adminID := createLeaveTestEmployee(t, ctx, db, companyID, "manager", 5)
	lt := createLeaveTestType(t, ctx, db, leave.LeaveType{
		CompanyID: companyID, Code: "ANNUAL", Name: "Annual Leave",
		IsPaid: true, DefaultDays: 12,
	})

	start := upcomingMonday()
	submitted, err := svc.Submit(ctx,
		jwt.Actor{EmployeeID: staffID, CompanyID: companyID, Role: "staff"},
		&leave.SubmitLeaveRequest{
			LeaveTypeID: lt.ID,
			StartDate:   start.Format("2006-01-02"),
			EndDate:     start.AddDate(0, 0, 2).Format("2006-01-02"),
		})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestPending, submitted.Status)
	assert.Equal(t, leave.LevelAdmin, submitted.ApprovalLevel)
	assert.Equal(t, 3.0, submitted.TotalDays)

	admin := jwt.Actor{EmployeeID: adminID, CompanyID: companyID, Role: "manager", IsAdmin: true}
	decided, err := svc.Decide(ctx, admin, &leave.DecideLeaveRequest{
		ID: submitted.ID, Decision: leave.DecisionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestApproved, decided.Status)
	require.NotNil(t, decided.Level3By)
	assert.Equal(t, adminID, *decided.Level3By)

	balance, err := postgresql.NewLeaveBalanceRepository(db).Get(ctx, staffID, lt.ID, start.Year())
	require.NoError(t, err)
	assert.Equal(t, 3.0, balance.UsedDays)

	notifications, err := postgresql.NewNotificationRepository(db).ListByEmployee(ctx, staffID, false)
	require.NoError(t, err)
	assert.Len(t, notifications, 2, "submit and decision each notify the requester")
}

func TestRequestServiceOverlapConflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := leaveTestDB(t)
	svc := newLeaveTestService(t, db)

	companyID := createLeaveTestCompany(t, ctx, db)
	staffID := createLeaveTestEmployee(t, ctx, db, companyID, "staff", 2)
	lt := createLeaveTestType(t, ctx, db, leave.LeaveType{
		CompanyID: companyID, Code: "ANNUAL", Name: "Annual Leave",
		IsPaid: true, DefaultDays: 12,
	})

	actor := jwt.Actor{EmployeeID: staffID, CompanyID: companyID, Role: "staff"}
	start := upcomingMonday()
	_, err := svc.Submit(ctx, actor, &leave.SubmitLeaveRequest{
		LeaveTypeID: lt.ID,
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.AddDate(0, 0, 2).Format("2006-01-02"),
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, actor, &leave.SubmitLeaveRequest{
		LeaveTypeID: lt.ID,
		StartDate:   start.AddDate(0, 0, 1).Format("2006-01-02"),
		EndDate:     start.AddDate(0, 0, 3).Format("2006-01-02"),
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestRequestServiceRejectTerminates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := leaveTestDB(t)
	svc := newLeaveTestService(t, db)

	companyID := createLeaveTestCompany(t, ctx, db)
	staffID := createLeaveTestEmployee(t, ctx, db, companyID, "staff", 2)
	adminID := createLeaveTestEmployee(t, ctx, db, companyID, "manager", 5)
	lt := createLeaveTestType(t, ctx, db, leave.LeaveType{
		CompanyID: companyID, Code: "ANNUAL", Name: "Annual Leave",
		IsPaid: true, DefaultDays: 12,
	})

	start := upcomingMonday()
	submitted, err := svc.Submit(ctx,
		jwt.Actor{EmployeeID: staffID, CompanyID: companyID, Role: "staff"},
		&leave.SubmitLeaveRequest{
			LeaveTypeID: lt.ID,
			StartDate:   start.Format("2006-01-02"),
			EndDate:     start.Format("2006-01-02"),
		})
	require.NoError(t, err)

	admin := jwt.Actor{EmployeeID: adminID, CompanyID: companyID, Role: "manager", IsAdmin: true}
	reason := "coverage gap that week"
	rejected, err := svc.Decide(ctx, admin, &leave.DecideLeaveRequest{
		ID: submitted.ID, Decision: leave.DecisionReject, Reason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)

	_, err = svc.Decide(ctx, admin, &leave.DecideLeaveRequest{
		ID: submitted.ID, Decision: leave.DecisionApprove,
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestRequestServiceWrongApprovalLevel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := leaveTestDB(t)
	svc := newLeaveTestService(t, db)

	companyID := createLeaveTestCompany(t, ctx, db)
	staffID := createLeaveTestEmployee(t, ctx, db, companyID, "staff", 2)
	managerID := createLeaveTestEmployee(t, ctx, db, companyID, "manager", 5)
	lt := createLeaveTestType(t, ctx, db, leave.LeaveType{
		CompanyID: companyID, Code: "ANNUAL", Name: "Annual Leave",
		IsPaid: true, DefaultDays: 12,
	})

	start := upcomingMonday()
	submitted, err := svc.Submit(ctx,
		jwt.Actor{EmployeeID: staffID, CompanyID: companyID, Role: "staff"},
		&leave.SubmitLeaveRequest{
			LeaveTypeID: lt.ID,
			StartDate:   start.Format("2006-01-02"),
			EndDate:     start.Format("2006-01-02"),
		})
	require.NoError(t, err)
	require.Equal(t, leave.LevelAdmin, submitted.ApprovalLevel)

	// A manager without the admin flag serves level 2, not level 3.
	manager := jwt.Actor{EmployeeID: managerID, CompanyID: companyID, Role: "manager"}
	_, err = svc.Decide(ctx, manager, &leave.DecideLeaveRequest{
		ID: submitted.ID, Decision: leave.DecisionApprove,
	})
	assert.ErrorIs(t, err, leave.ErrWrongApprovalLevel)
}

func TestRequestServiceConcurrentBalanceMismatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := leaveTestDB(t)
	svc := newLeaveTestService(t, db)

	companyID := createLeaveTestCompany(t, ctx, db)
	staffID := createLeaveTestEmployee(t, ctx, db, companyID, "staff", 2)
	adminID := createLeaveTestEmployee(t, ctx, db, companyID, "manager", 5)
	lt := createLeaveTestType(t, ctx, db, leave.LeaveType{
		CompanyID: companyID, Code: "ANNUAL", Name: "Annual Leave",
		IsPaid: true, DefaultDays: 4,
	})

	actor := jwt.Actor{EmployeeID: staffID, CompanyID: companyID, Role: "staff"}
	start := upcomingMonday()
	first, err := svc.Submit(ctx, actor, &leave.SubmitLeaveRequest{
		LeaveTypeID: lt.ID,
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.AddDate(0, 0, 2).Format("2006-01-02"),
	})
	require.NoError(t, err)

	// Both submissions pass the balance check while nothing is burned.
	nextWeek := start.AddDate(0, 0, 7)
	second, err := svc.Submit(ctx, actor, &leave.SubmitLeaveRequest{
		LeaveTypeID: lt.ID,
		StartDate:   nextWeek.Format("2006-01-02"),
		EndDate:     nextWeek.AddDate(0, 0, 2).Format("2006-01-02"),
	})
	require.NoError(t, err)

	admin := jwt.Actor{EmployeeID: adminID, CompanyID: companyID, Role: "manager", IsAdmin: true}
	_, err = svc.Decide(ctx, admin, &leave.DecideLeaveRequest{
		ID: first.ID, Decision: leave.DecisionApprove,
	})
	require.NoError(t, err)

	_, err = svc.Decide(ctx, admin, &leave.DecideLeaveRequest{
		ID: second.ID, Decision: leave.DecisionApprove,
	})
	assert.ErrorIs(t, err, leave.ErrConcurrentBalanceMismatch)

	// The failed decision rolled back; the request is still pending.
	reloaded, err := postgresql.NewLeaveRequestRepository(db).GetByID(ctx, second.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, leave.RequestPending, reloaded.Status)
}

func TestBalanceServiceOpenYearAppliesCarryCap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := leaveTestDB(t)

	companyID := createLeaveTestCompany(t, ctx, db)
	empID := createLeaveTestEmployee(t, ctx, db, companyID, "staff", 6)
	annual := createLeaveTestType(t, ctx, db, leave.LeaveType{
		CompanyID: companyID, Code: "ANNUAL", Name: "Annual Leave",
		IsPaid: true, DefaultDays: 16,
		CarriesForward: true, CarryForwardCap: floatPtr(5),
	})
	sick := createLeaveTestType(t, ctx, db, leave.LeaveType{
		CompanyID: companyID, Code: "SICK", Name: "Sick Leave",
		IsPaid: true, DefaultDays: 14,
	})

	balRepo := postgresql.NewLeaveBalanceRepository(db)
	_, err := balRepo.Create(ctx, leave.LeaveBalance{
		EmployeeID: empID, LeaveTypeID: annual.ID, Year: 2030,
		EntitledDays: 16, UsedDays: 8,
	})
	require.NoError(t, err)
	_, err = balRepo.Create(ctx, leave.LeaveBalance{
		EmployeeID: empID, LeaveTypeID: sick.ID, Year: 2030,
		EntitledDays: 14, UsedDays: 2,
	})
	require.NoError(t, err)

	svc := NewBalanceService(balRepo, postgresql.NewLeaveTypeRepository(db), postgresql.NewEmployeeRepository(db))
	require.NoError(t, svc.OpenYear(ctx, companyID, empID, 2031))

	annualBal, err := balRepo.Get(ctx, empID, annual.ID, 2031)
	require.NoError(t, err)
	assert.Equal(t, 16.0, annualBal.EntitledDays)
	assert.Equal(t, 5.0, annualBal.CarriedForward, "8 remaining days clamp to the cap of 5")
	assert.Equal(t, 0.0, annualBal.UsedDays)

	sickBal, err := balRepo.Get(ctx, empID, sick.ID, 2031)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sickBal.CarriedForward, "non-carrying types start clean")

	// Idempotent; a second open leaves the materialized rows alone.
	require.NoError(t, svc.OpenYear(ctx, companyID, empID, 2031))
	again, err := balRepo.Get(ctx, empID, annual.ID, 2031)
	require.NoError(t, err)
	assert.Equal(t, annualBal.ID, again.ID)
	assert.Equal(t, 5.0, again.CarriedForward)
}
