package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/domain/notification"
	"github.com/gajihub/hr-backend-go/internal/domain/payroll"
	"github.com/gajihub/hr-backend-go/internal/pkg/clock"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
	"github.com/gajihub/hr-backend-go/internal/service/approval"
	"github.com/gajihub/hr-backend-go/internal/service/file"
	notifsvc "github.com/gajihub/hr-backend-go/internal/service/notification"
	"github.com/gajihub/hr-backend-go/internal/service/workingday"
)

type RequestService struct {
	db            *database.DB
	requests      leave.LeaveRequestRepository
	types         leave.LeaveTypeRepository
	balances      leave.LeaveBalanceRepository
	employees     employee.EmployeeRepository
	companies     company.CompanyRepository
	workingDays   *workingday.Calculator
	files         *file.Service
	notifications *notifsvc.Service
	resolver      *approval.Resolver

	clockFor func(timezone string) clock.Clock
}

func NewRequestService(
	db *database.DB,
	requests leave.LeaveRequestRepository,
	types leave.LeaveTypeRepository,
	balances leave.LeaveBalanceRepository,
	employees employee.EmployeeRepository,
	companies company.CompanyRepository,
	workingDays *workingday.Calculator,
	files *file.Service,
	notifications *notifsvc.Service,
	resolver *approval.Resolver,
) *RequestService {
	return &RequestService{
		db:            db,
		requests:      requests,
		types:         types,
		balances:      balances,
		employees:     employees,
		companies:     companies,
		workingDays:   workingDays,
		files:         files,
		notifications: notifications,
		resolver:      resolver,
		clockFor:      clock.New,
	}
}

// Submit runs the whole submission pipeline and persists the request at
// its initial approval level.
func (s *RequestService) Submit(ctx context.Context, actor jwt.Actor, req *leave.SubmitLeaveRequest) (leave.LeaveRequest, error) {
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	today := s.clockFor(comp.Timezone).Today()

	if err := req.Validate(today); err != nil {
		return leave.LeaveRequest{}, err
	}

	emp, err := s.employees.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if emp.Status != employee.StatusActive {
		return leave.LeaveRequest{}, employee.ErrEmployeeInactive
	}

	lt, err := s.types.GetByID(ctx, req.LeaveTypeID, actor.CompanyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := Eligibility(ctx, s.requests, emp, lt, req.Start); err != nil {
		return leave.LeaveRequest{}, err
	}

	if lt.RequiresAttachment && len(req.Attachment) == 0 {
		return leave.LeaveRequest{}, leave.ErrAttachmentRequired
	}

	overlapping, err := s.requests.HasOverlapping(ctx, emp.ID, req.Start, req.End)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if overlapping {
		return leave.LeaveRequest{}, leave.ErrOverlappingRequest
	}

	totalDays, err := s.totalDays(ctx, comp.ID, lt, req)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if lt.IsPaid {
		balance, err := s.ensureBalance(ctx, emp, lt, req.Start.Year())
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		if balance.Available() < totalDays {
			return leave.LeaveRequest{}, leave.ErrInsufficientBalance
		}
	}

	var attachmentURL *string
	if len(req.Attachment) > 0 {
		url, err := s.files.Upload(ctx, req.Attachment, "leave-attachments", req.AttachmentFilename)
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		attachmentURL = &url
	}

	request := leave.LeaveRequest{
		EmployeeID:    emp.ID,
		CompanyID:     comp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     req.Start,
		EndDate:       req.End,
		TotalDays:     totalDays,
		HalfDay:       req.HalfDay,
		Reason:        req.Reason,
		AttachmentURL: attachmentURL,
		Status:        leave.RequestPending,
		ApprovalLevel: s.resolver.InitialLevel(comp.GroupingMode, emp.Role),
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// Re-check under the transaction; two overlapping submissions
		// must not both pass.
		overlapping, err := s.requests.HasOverlapping(txCtx, emp.ID, req.Start, req.End)
		if err != nil {
			return err
		}
		if overlapping {
			return leave.ErrOverlappingRequest
		}
		request, err = s.requests.Create(txCtx, request)
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifySubmitted(ctx, comp, emp, request)
	return request, nil
}

func (s *RequestService) totalDays(ctx context.Context, companyID string, lt leave.LeaveType, req *leave.SubmitLeaveRequest) (float64, error) {
	if lt.IsConsecutive {
		days := float64(int(req.End.Sub(req.Start).Hours()/24) + 1)
		if req.HalfDay {
			return 0, validator.ValidationErrors{{
				Field: "half_day", Message: "half_day does not apply to consecutive leave types",
			}}
		}
		return days, nil
	}

	working, err := s.workingDays.Count(ctx, companyID, req.Start, req.End)
	if err != nil {
		return 0, err
	}
	if working == 0 {
		return 0, validator.ValidationErrors{{
			Field: "start_date", Message: "the requested range contains no working days",
		}}
	}
	if req.HalfDay {
		if working != 1 {
			return 0, validator.ValidationErrors{{
				Field: "half_day", Message: "half_day is only valid for a single working day",
			}}
		}
		return 0.5, nil
	}
	return float64(working), nil
}

func (s *RequestService) ensureBalance(ctx context.Context, emp employee.Employee, lt leave.LeaveType, year int) (leave.LeaveBalance, error) {
	balance, err := s.balances.Get(ctx, emp.ID, lt.ID, year)
	if err == nil {
		return balance, nil
	}
	if err != leave.ErrBalanceNotFound {
		return leave.LeaveBalance{}, err
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.balances.Create(ctx, leave.LeaveBalance{
		EmployeeID:   emp.ID,
		LeaveTypeID:  lt.ID,
		Year:         year,
		EntitledDays: Entitlement(lt, emp.CompletedServiceYears(yearStart)),
	})
}

// Decide applies one approval-level decision.
func (s *RequestService) Decide(ctx context.Context, actor jwt.Actor, req *leave.DecideLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var result leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		lr, err := s.requests.GetByIDForUpdate(txCtx, req.ID, actor.CompanyID)
		if err != nil {
			return err
		}
		if lr.Linked() {
			return payroll.ErrLinkedToPayroll
		}
		if lr.Status != leave.RequestPending {
			return leave.ErrAlreadyProcessed
		}

		subjectEmp, err := s.employees.GetByID(txCtx, actor.EmployeeID, actor.CompanyID)
		if err != nil {
			return err
		}
		targetEmp, err := s.employees.GetByID(txCtx, lr.EmployeeID, actor.CompanyID)
		if err != nil {
			return err
		}
		var managed []string
		if subjectEmp.Role == employee.RoleSupervisor {
			if managed, err = s.employees.ManagedOutletIDs(txCtx, subjectEmp.ID); err != nil {
				return err
			}
		}
		if !s.resolver.CanAct(comp.GroupingMode, approval.SubjectFor(subjectEmp, actor.IsAdmin, managed), approval.TargetFor(targetEmp)) {
			return approval.ErrNotPermitted
		}
		if s.resolver.LevelForRole(subjectEmp.Role, actor.IsAdmin) != lr.ApprovalLevel {
			return leave.ErrWrongApprovalLevel
		}

		now := s.clockFor(comp.Timezone).Now()
		stampLevel(&lr, lr.ApprovalLevel, actor.EmployeeID, now)

		if req.Decision == leave.DecisionReject {
			lr.Status = leave.RequestRejected
			lr.RejectionReason = req.Reason
		} else if lr.ApprovalLevel < leave.LevelAdmin {
			lr.ApprovalLevel++
		} else {
			if err := s.commitBalance(txCtx, targetEmp, lr); err != nil {
				return err
			}
			lr.Status = leave.RequestApproved
		}

		if err := s.requests.Update(txCtx, lr); err != nil {
			return err
		}
		result = lr
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyDecided(ctx, comp, result, req.Decision)
	return result, nil
}

// commitBalance burns the days on final approval, under a row lock.
func (s *RequestService) commitBalance(ctx context.Context, emp employee.Employee, lr leave.LeaveRequest) error {
	lt, err := s.types.GetByID(ctx, lr.LeaveTypeID, lr.CompanyID)
	if err != nil {
		return err
	}
	if !lt.IsPaid {
		return nil
	}

	if _, err := s.ensureBalance(ctx, emp, lt, lr.StartDate.Year()); err != nil {
		return err
	}
	balance, err := s.balances.GetForUpdate(ctx, emp.ID, lt.ID, lr.StartDate.Year())
	if err != nil {
		return err
	}
	if balance.Available() < lr.TotalDays {
		return leave.ErrConcurrentBalanceMismatch
	}
	return s.balances.AddUsed(ctx, balance.ID, lr.TotalDays)
}

func stampLevel(lr *leave.LeaveRequest, level int, by string, at time.Time) {
	switch level {
	case leave.LevelSupervisor:
		lr.Level1By, lr.Level1At = &by, &at
	case leave.LevelManager:
		lr.Level2By, lr.Level2At = &by, &at
	case leave.LevelAdmin:
		lr.Level3By, lr.Level3At = &by, &at
	}
}

// Cancel withdraws the requester's own pending request.
func (s *RequestService) Cancel(ctx context.Context, actor jwt.Actor, id string) (leave.LeaveRequest, error) {
	var result leave.LeaveRequest
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		lr, err := s.requests.GetByIDForUpdate(txCtx, id, actor.CompanyID)
		if err != nil {
			return err
		}
		if lr.EmployeeID != actor.EmployeeID {
			return leave.ErrNotRequester
		}
		if lr.Status != leave.RequestPending {
			return leave.ErrAlreadyProcessed
		}
		lr.Status = leave.RequestCancelled
		if err := s.requests.Update(txCtx, lr); err != nil {
			return err
		}
		result = lr
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return result, nil
}

// MyRequests lists the actor's own requests for a year.
func (s *RequestService) MyRequests(ctx context.Context, actor jwt.Actor, year int) ([]leave.LeaveRequest, error) {
	return s.requests.ListByEmployee(ctx, actor.EmployeeID, year)
}

// TeamPending lists pending requests sitting at the actor's approval
// level.
func (s *RequestService) TeamPending(ctx context.Context, actor jwt.Actor) ([]leave.LeaveRequest, error) {
	emp, err := s.employees.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	level := s.resolver.LevelForRole(emp.Role, actor.IsAdmin)
	if level == 0 {
		return nil, approval.ErrNotPermitted
	}
	if level == leave.LevelAdmin {
		return s.requests.ListPendingForAdmin(ctx, actor.CompanyID)
	}

	var outlets []string
	if emp.Role == employee.RoleSupervisor {
		if outlets, err = s.employees.ManagedOutletIDs(ctx, emp.ID); err != nil {
			return nil, err
		}
	}
	ids, err := s.employees.TeamIDs(ctx, actor.CompanyID, outlets, emp.DepartmentID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.requests.ListPendingForLevel(ctx, actor.CompanyID, level, ids)
}

func (s *RequestService) notifySubmitted(ctx context.Context, comp company.Company, emp employee.Employee, lr leave.LeaveRequest) {
	dates := fmt.Sprintf("%s to %s", lr.StartDate.Format("2006-01-02"), lr.EndDate.Format("2006-01-02"))
	s.notifications.Emit(ctx, comp.ID, emp.ID, notification.TypeLeaveSubmitted,
		"Leave request submitted",
		fmt.Sprintf("Your leave request for %s is awaiting approval.", dates),
		&lr.ID)

	if lr.ApprovalLevel == leave.LevelSupervisor && emp.OutletID != nil {
		supervisors, err := s.employees.ActiveSupervisorsByOutlet(ctx, *emp.OutletID)
		if err != nil {
			return
		}
		for _, supervisor := range supervisors {
			s.notifications.Emit(ctx, comp.ID, supervisor.ID, notification.TypeLeaveSubmitted,
				"Leave request awaiting approval",
				fmt.Sprintf("%s requested leave for %s.", emp.FullName, dates),
				&lr.ID)
		}
	}
}

func (s *RequestService) notifyDecided(ctx context.Context, comp company.Company, lr leave.LeaveRequest, decision leave.Decision) {
	var message string
	switch {
	case decision == leave.DecisionReject:
		message = "Your leave request was rejected."
	case lr.Status == leave.RequestApproved:
		message = "Your leave request was approved."
	default:
		message = fmt.Sprintf("Your leave request advanced to approval level %d.", lr.ApprovalLevel)
	}
	s.notifications.Emit(ctx, comp.ID, lr.EmployeeID, notification.TypeLeaveDecided,
		"Leave request update", message, &lr.ID)
}
