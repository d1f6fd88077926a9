package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gajihub/hr-backend-go/internal/config"
	appHTTP "github.com/gajihub/hr-backend-go/internal/handler/http"
	"github.com/gajihub/hr-backend-go/internal/pkg/cron"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/pkg/sse"
	"github.com/gajihub/hr-backend-go/internal/pkg/storage"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
	advanceService "github.com/gajihub/hr-backend-go/internal/service/advance"
	"github.com/gajihub/hr-backend-go/internal/service/approval"
	claimService "github.com/gajihub/hr-backend-go/internal/service/claim"
	companyService "github.com/gajihub/hr-backend-go/internal/service/company"
	"github.com/gajihub/hr-backend-go/internal/service/file"
	holidayService "github.com/gajihub/hr-backend-go/internal/service/holiday"
	leaveService "github.com/gajihub/hr-backend-go/internal/service/leave"
	notificationService "github.com/gajihub/hr-backend-go/internal/service/notification"
	payrollService "github.com/gajihub/hr-backend-go/internal/service/payroll"
	scheduleService "github.com/gajihub/hr-backend-go/internal/service/schedule"
	timecardService "github.com/gajihub/hr-backend-go/internal/service/timecard"
	"github.com/gajihub/hr-backend-go/internal/service/workingday"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timecardRepo := postgresql.NewTimecardRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	claimRepo := postgresql.NewClaimRepository(db)
	categoryRuleRepo := postgresql.NewCategoryRuleRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	payrollItemRepo := postgresql.NewPayrollItemRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	verifier := jwt.NewVerifier(cfg.JWT.Secret)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := file.NewService(fileStorage, cfg.Storage.UploadTimeout, logger)
	hub := sse.NewHub()
	notificationSvc := notificationService.NewService(notificationRepo, hub, logger)
	resolver := approval.NewResolver()
	workingDays := workingday.NewCalculator(holidayRepo)

	timecardSvc := timecardService.NewService(
		db,
		timecardRepo,
		employeeRepo,
		companyRepo,
		shiftRepo,
		fileSvc,
		notificationSvc,
		resolver,
		cfg.Policy.SelfieMaxBytes,
	)
	leaveRequestSvc := leaveService.NewRequestService(
		db,
		leaveRequestRepo,
		leaveTypeRepo,
		leaveBalanceRepo,
		employeeRepo,
		companyRepo,
		workingDays,
		fileSvc,
		notificationSvc,
		resolver,
	)
	leaveBalanceSvc := leaveService.NewBalanceService(leaveBalanceRepo, leaveTypeRepo, employeeRepo)
	claimSvc := claimService.NewService(
		db,
		claimRepo,
		categoryRuleRepo,
		employeeRepo,
		companyRepo,
		fileSvc,
		notificationSvc,
		resolver,
	)
	advanceSvc := advanceService.NewService(db, advanceRepo, employeeRepo, companyRepo)
	payrollSvc := payrollService.NewService(
		db,
		payrollItemRepo,
		timecardRepo,
		claimRepo,
		leaveRequestRepo,
		employeeRepo,
		companyRepo,
		advanceSvc,
		workingDays,
	)
	holidaySvc := holidayService.NewService(holidayRepo, workingDays)
	companySvc := companyService.NewService(db, companyRepo, leaveTypeRepo, categoryRuleRepo)
	scheduleSvc := scheduleService.NewService(shiftRepo)

	scheduler := cron.NewScheduler()
	timecardJobs := cron.NewTimecardJobs(timecardSvc, cfg.App.Timezone)
	timecardJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	timecardHandler := appHTTP.NewTimecardHandler(timecardSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveRequestSvc, leaveBalanceSvc)
	claimHandler := appHTTP.NewClaimHandler(claimSvc)
	advanceHandler := appHTTP.NewAdvanceHandler(advanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)

	router := appHTTP.NewRouter(
		verifier,
		timecardHandler,
		leaveHandler,
		claimHandler,
		advanceHandler,
		payrollHandler,
		holidayHandler,
		notificationHandler,
		companyHandler,
		scheduleHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
