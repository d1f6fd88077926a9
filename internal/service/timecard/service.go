package timecard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/domain/notification"
	"github.com/gajihub/hr-backend-go/internal/domain/payroll"
	"github.com/gajihub/hr-backend-go/internal/domain/schedule"
	"github.com/gajihub/hr-backend-go/internal/domain/timecard"
	"github.com/gajihub/hr-backend-go/internal/pkg/clock"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
	"github.com/gajihub/hr-backend-go/internal/service/approval"
	"github.com/gajihub/hr-backend-go/internal/service/file"
	notifsvc "github.com/gajihub/hr-backend-go/internal/service/notification"
)

type Service struct {
	db            *database.DB
	timecards     timecard.TimecardRepository
	employees     employee.EmployeeRepository
	companies     company.CompanyRepository
	shifts        schedule.ShiftRepository
	files         *file.Service
	notifications *notifsvc.Service
	resolver      *approval.Resolver

	selfieMaxBytes int64

	// clockFor builds the company-timezone clock; replaced in tests.
	clockFor func(timezone string) clock.Clock
}

func NewService(
	db *database.DB,
	timecards timecard.TimecardRepository,
	employees employee.EmployeeRepository,
	companies company.CompanyRepository,
	shifts schedule.ShiftRepository,
	files *file.Service,
	notifications *notifsvc.Service,
	resolver *approval.Resolver,
	selfieMaxBytes int64,
) *Service {
	return &Service{
		db:             db,
		timecards:      timecards,
		employees:      employees,
		companies:      companies,
		shifts:         shifts,
		files:          files,
		notifications:  notifications,
		resolver:       resolver,
		selfieMaxBytes: selfieMaxBytes,
		clockFor:       clock.New,
	}
}

// ClockAction applies one clock action for the actor's own timecard.
// The selfie is uploaded before the transactional write; an upload
// failure aborts with nothing persisted.
func (s *Service) ClockAction(ctx context.Context, actor jwt.Actor, req *timecard.ClockActionRequest) (timecard.Timecard, error) {
	if err := req.Validate(s.selfieMaxBytes); err != nil {
		return timecard.Timecard{}, err
	}

	emp, err := s.employees.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return timecard.Timecard{}, err
	}
	if emp.Status != employee.StatusActive {
		return timecard.Timecard{}, employee.ErrEmployeeInactive
	}

	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return timecard.Timecard{}, err
	}

	companyClock := s.clockFor(comp.Timezone)
	now := companyClock.Now()
	today := companyClock.Today()

	selfieURL, err := s.files.Upload(ctx, req.Selfie, "selfies", req.SelfieFilename)
	if err != nil {
		return timecard.Timecard{}, err
	}

	event := timecard.ClockEvent{
		At:             &now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Address:        req.Address,
		SelfieURL:      &selfieURL,
		FaceDetected:   &req.FaceDetected,
		FaceConfidence: req.FaceConfidence,
	}

	var result timecard.Timecard
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.timecards.GetForUpdate(txCtx, emp.ID, today, comp.ID)
		if err != nil {
			return err
		}
		if err := checkTransition(existing, req.Action); err != nil {
			return err
		}

		if existing == nil {
			created, err := s.createFirst(txCtx, emp, comp, today, event)
			if err != nil {
				return err
			}
			result = created
			return nil
		}

		if existing.Linked() {
			return payroll.ErrLinkedToPayroll
		}

		*existing.Slot(req.Action) = event
		existing.Status = timecard.StatusInProgress
		if req.Action == timecard.ActionClockOut2 {
			seal(existing, comp.StandardWorkMinutes, emp.WorkType == employee.WorkTypeFullTime)
		}

		if err := s.timecards.Update(txCtx, *existing); err != nil {
			return err
		}
		result = *existing
		return nil
	})
	if err != nil {
		return timecard.Timecard{}, err
	}

	if result.OTFlagged && comp.GroupingMode == company.GroupingOutlet {
		s.notifyOvertime(ctx, comp, emp, result)
	}
	return result, nil
}

func (s *Service) createFirst(ctx context.Context, emp employee.Employee, comp company.Company, today time.Time, event timecard.ClockEvent) (timecard.Timecard, error) {
	tc := timecard.Timecard{
		EmployeeID:     emp.ID,
		CompanyID:      comp.ID,
		Date:           today,
		In1:            event,
		Status:         timecard.StatusInProgress,
		ApprovalStatus: timecard.ApprovalPending,
	}

	if comp.GroupingMode == company.GroupingOutlet {
		scheduled, err := s.shifts.HasShiftOn(ctx, emp.ID, today)
		if err != nil {
			return timecard.Timecard{}, err
		}
		status := timecard.AttendanceNoSchedule
		if scheduled {
			status = timecard.AttendancePresent
		}
		tc.AttendanceStatus = &status
	}

	return s.timecards.Create(ctx, tc)
}

// TodayStatus returns the actor's timecard for today, or an empty
// not-started view when none exists.
func (s *Service) TodayStatus(ctx context.Context, actor jwt.Actor) (timecard.Timecard, error) {
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return timecard.Timecard{}, err
	}
	today := s.clockFor(comp.Timezone).Today()

	tc, err := s.timecards.GetByEmployeeAndDate(ctx, actor.EmployeeID, today, actor.CompanyID)
	if err != nil {
		return timecard.Timecard{}, err
	}
	if tc == nil {
		return timecard.Timecard{
			EmployeeID:     actor.EmployeeID,
			CompanyID:      actor.CompanyID,
			Date:           today,
			Status:         timecard.StatusNotStarted,
			ApprovalStatus: timecard.ApprovalPending,
		}, nil
	}
	return *tc, nil
}

// History lists the actor's timecards for one month.
func (s *Service) History(ctx context.Context, actor jwt.Actor, filter *timecard.HistoryFilter) ([]timecard.Timecard, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.timecards.History(ctx, actor.EmployeeID, filter.Month, filter.Year, actor.CompanyID)
}

// TeamPending lists completed timecards awaiting the actor's approval.
func (s *Service) TeamPending(ctx context.Context, actor jwt.Actor) ([]timecard.Timecard, error) {
	ids, err := s.teamScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.timecards.ListPendingByEmployeeIDs(ctx, actor.CompanyID, ids)
}

// Approve marks a completed timecard approved.
func (s *Service) Approve(ctx context.Context, actor jwt.Actor, id string) (timecard.Timecard, error) {
	return s.decide(ctx, actor, id, timecard.ApprovalApproved, nil)
}

// Reject marks a completed timecard rejected with a reason.
func (s *Service) Reject(ctx context.Context, actor jwt.Actor, req *timecard.DecideTimecardRequest) (timecard.Timecard, error) {
	if req.Reason == "" {
		return timecard.Timecard{}, timecard.ErrRejectionReason
	}
	return s.decide(ctx, actor, req.ID, timecard.ApprovalRejected, &req.Reason)
}

func (s *Service) decide(ctx context.Context, actor jwt.Actor, id string, decision timecard.ApprovalStatus, reason *string) (timecard.Timecard, error) {
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return timecard.Timecard{}, err
	}

	var result timecard.Timecard
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		tc, err := s.timecards.GetByIDForUpdate(txCtx, id, actor.CompanyID)
		if err != nil {
			return err
		}
		if tc.Linked() {
			return payroll.ErrLinkedToPayroll
		}
		if tc.Status != timecard.StatusCompleted {
			return timecard.ErrNotCompleted
		}
		if tc.ApprovalStatus != timecard.ApprovalPending {
			return timecard.ErrAlreadyProcessed
		}

		if err := s.authorize(txCtx, comp, actor, tc.EmployeeID); err != nil {
			return err
		}

		now := s.clockFor(comp.Timezone).Now()
		tc.ApprovalStatus = decision
		tc.ApprovedBy = &actor.EmployeeID
		tc.ApprovedAt = &now
		tc.RejectionReason = reason

		if err := s.timecards.Update(txCtx, tc); err != nil {
			return err
		}
		result = tc
		return nil
	})
	if err != nil {
		return timecard.Timecard{}, err
	}

	verb := "approved"
	if decision == timecard.ApprovalRejected {
		verb = "rejected"
	}
	s.notifications.Emit(ctx, actor.CompanyID, result.EmployeeID, notification.TypeTimecardDecided,
		"Timecard "+verb,
		fmt.Sprintf("Your timecard for %s was %s.", result.Date.Format("2006-01-02"), verb),
		&result.ID)
	return result, nil
}

// Override clears slots written in error. Slots can only be cleared,
// never written, and the row must not be linked to payroll.
func (s *Service) Override(ctx context.Context, actor jwt.Actor, req *timecard.OverrideRequest) (timecard.Timecard, error) {
	if err := req.Validate(); err != nil {
		return timecard.Timecard{}, err
	}
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return timecard.Timecard{}, err
	}

	var result timecard.Timecard
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		tc, err := s.timecards.GetByIDForUpdate(txCtx, req.ID, actor.CompanyID)
		if err != nil {
			return err
		}
		if tc.Linked() {
			return payroll.ErrLinkedToPayroll
		}
		if err := s.authorize(txCtx, comp, actor, tc.EmployeeID); err != nil {
			return err
		}

		for _, action := range req.ClearSlots {
			*tc.Slot(action) = timecard.ClockEvent{}
		}
		recomputeAfterClear(&tc)

		if err := s.timecards.Update(txCtx, tc); err != nil {
			return err
		}
		result = tc
		return nil
	})
	if err != nil {
		return timecard.Timecard{}, err
	}
	return result, nil
}

func (s *Service) authorize(ctx context.Context, comp company.Company, actor jwt.Actor, targetEmployeeID string) error {
	subjectEmp, err := s.employees.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return err
	}
	targetEmp, err := s.employees.GetByID(ctx, targetEmployeeID, actor.CompanyID)
	if err != nil {
		return err
	}

	var managed []string
	if subjectEmp.Role == employee.RoleSupervisor {
		managed, err = s.employees.ManagedOutletIDs(ctx, subjectEmp.ID)
		if err != nil {
			return err
		}
	}

	subject := approval.SubjectFor(subjectEmp, actor.IsAdmin, managed)
	target := approval.TargetFor(targetEmp)
	if !s.resolver.CanAct(comp.GroupingMode, subject, target) {
		return approval.ErrNotPermitted
	}
	return nil
}

func (s *Service) teamScope(ctx context.Context, actor jwt.Actor) ([]string, error) {
	emp, err := s.employees.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	var outlets []string
	if emp.Role == employee.RoleSupervisor {
		outlets, err = s.employees.ManagedOutletIDs(ctx, emp.ID)
		if err != nil {
			return nil, err
		}
	}
	return s.employees.TeamIDs(ctx, actor.CompanyID, outlets, emp.DepartmentID)
}

func (s *Service) notifyOvertime(ctx context.Context, comp company.Company, emp employee.Employee, tc timecard.Timecard) {
	if emp.OutletID == nil {
		return
	}
	supervisors, err := s.employees.ActiveSupervisorsByOutlet(ctx, *emp.OutletID)
	if err != nil {
		return
	}
	message := fmt.Sprintf("%s completed %s with %d overtime minutes.",
		emp.FullName, tc.Date.Format("2006-01-02"), deref(tc.OTMinutes))
	for _, supervisor := range supervisors {
		s.notifications.Emit(ctx, comp.ID, supervisor.ID, notification.TypeOvertimeFlagged,
			"Overtime flagged", message, &tc.ID)
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// CloseStale seals timecards left in progress past their day. The
// recorded slots stand; a missing out action simply caps the totals at
// whatever pairs were completed.
func (s *Service) CloseStale(ctx context.Context, before time.Time) (int, error) {
	stale, err := s.timecards.ListStaleInProgress(ctx, before)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, tc := range stale {
		err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
			locked, err := s.timecards.GetByIDForUpdate(txCtx, tc.ID, tc.CompanyID)
			if err != nil {
				return err
			}
			if locked.Status != timecard.StatusInProgress {
				return nil
			}
			emp, err := s.employees.GetByID(txCtx, locked.EmployeeID, locked.CompanyID)
			if err != nil {
				return err
			}
			comp, err := s.companies.GetByID(txCtx, locked.CompanyID)
			if err != nil {
				return err
			}
			seal(&locked, comp.StandardWorkMinutes, emp.WorkType == employee.WorkTypeFullTime)
			return s.timecards.Update(txCtx, locked)
		})
		if err != nil {
			slog.Error("failed to close stale timecard", "timecard_id", tc.ID, "error", err)
			continue
		}
		closed++
	}
	return closed, nil
}
