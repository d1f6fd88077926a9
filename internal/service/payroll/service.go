package payroll

import (
	"context"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/domain/payroll"
	"github.com/gajihub/hr-backend-go/internal/domain/timecard"
	"github.com/gajihub/hr-backend-go/internal/pkg/clock"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
	advancesvc "github.com/gajihub/hr-backend-go/internal/service/advance"
	"github.com/gajihub/hr-backend-go/internal/service/workingday"
	"github.com/shopspring/decimal"
)

// Service is the payroll linkage gate: creating an item freezes the
// month's approved rows in one transaction, deleting it releases them.
type Service struct {
	db          *database.DB
	items       payroll.PayrollItemRepository
	timecards   timecard.TimecardRepository
	claims      claim.ClaimRepository
	requests    leave.LeaveRequestRepository
	employees   employee.EmployeeRepository
	companies   company.CompanyRepository
	advances    *advancesvc.Service
	workingDays *workingday.Calculator

	clockFor func(timezone string) clock.Clock
}

func NewService(
	db *database.DB,
	items payroll.PayrollItemRepository,
	timecards timecard.TimecardRepository,
	claims claim.ClaimRepository,
	requests leave.LeaveRequestRepository,
	employees employee.EmployeeRepository,
	companies company.CompanyRepository,
	advances *advancesvc.Service,
	workingDays *workingday.Calculator,
) *Service {
	return &Service{
		db:          db,
		items:       items,
		timecards:   timecards,
		claims:      claims,
		requests:    requests,
		employees:   employees,
		companies:   companies,
		advances:    advances,
		workingDays: workingDays,
		clockFor:    clock.New,
	}
}

// Link assembles one employee-month payroll item. Everything it
// aggregates is stamped with the item id inside the same transaction;
// stamped rows refuse mutation until Unlink.
func (s *Service) Link(ctx context.Context, actor jwt.Actor, req *payroll.LinkRequest) (payroll.PayrollItem, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollItem{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID, actor.CompanyID)
	if err != nil {
		return payroll.PayrollItem{}, err
	}
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return payroll.PayrollItem{}, err
	}
	loc := s.clockFor(comp.Timezone).Location()

	var result payroll.PayrollItem
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		exists, err := s.items.ExistsForMonth(txCtx, emp.ID, req.Month, req.Year)
		if err != nil {
			return err
		}
		if exists {
			return payroll.ErrAlreadyLinked
		}

		item, err := s.items.Create(txCtx, payroll.PayrollItem{
			CompanyID:        comp.ID,
			EmployeeID:       emp.ID,
			Month:            req.Month,
			Year:             req.Year,
			ClaimsTotal:      decimal.Zero,
			AdvanceDeduction: decimal.Zero,
		})
		if err != nil {
			return err
		}
		periodStart, periodEnd := item.Period(loc)

		cards, err := s.timecards.LockApprovedUnlinked(txCtx, emp.ID, req.Month, req.Year)
		if err != nil {
			return err
		}
		cardIDs := make([]string, 0, len(cards))
		for _, tc := range cards {
			if tc.WorkMinutes != nil {
				item.WorkMinutes += *tc.WorkMinutes
			}
			if tc.OTMinutes != nil {
				item.OTMinutes += *tc.OTMinutes
			}
			cardIDs = append(cardIDs, tc.ID)
		}
		if err := s.timecards.StampPayrollItem(txCtx, cardIDs, item.ID); err != nil {
			return err
		}

		claims, err := s.claims.LockApprovedUnlinked(txCtx, emp.ID, req.Month, req.Year)
		if err != nil {
			return err
		}
		claimIDs := make([]string, 0, len(claims))
		for _, c := range claims {
			item.ClaimsTotal = item.ClaimsTotal.Add(c.Amount)
			claimIDs = append(claimIDs, c.ID)
		}
		if err := s.claims.StampPayrollItem(txCtx, claimIDs, item.ID); err != nil {
			return err
		}

		unpaidDays, requestIDs, err := s.unpaidLeaveDays(txCtx, comp.ID, emp.ID, periodStart, periodEnd)
		if err != nil {
			return err
		}
		item.UnpaidLeaveDays = unpaidDays
		if err := s.requests.StampPayrollItem(txCtx, requestIDs, item.ID); err != nil {
			return err
		}

		deducted, err := s.advances.Deduct(txCtx, emp.ID, item.ID, req.Month, req.Year)
		if err != nil {
			return err
		}
		item.AdvanceDeduction = deducted

		if err := s.items.Update(txCtx, item); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return payroll.PayrollItem{}, err
	}
	return result, nil
}

// unpaidLeaveDays pro-rates approved unpaid leave over the working
// days that fall inside the payroll period.
func (s *Service) unpaidLeaveDays(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) (float64, []string, error) {
	requests, err := s.requests.LockApprovedUnpaidIntersecting(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return 0, nil, err
	}

	var total float64
	ids := make([]string, 0, len(requests))
	for _, lr := range requests {
		start := lr.StartDate
		if start.Before(periodStart) {
			start = periodStart
		}
		end := lr.EndDate
		if end.After(periodEnd) {
			end = periodEnd
		}
		count, err := s.workingDays.Count(ctx, companyID, start, end)
		if err != nil {
			return 0, nil, err
		}
		days := float64(count)
		if lr.TotalDays < days {
			days = lr.TotalDays
		}
		total += days
		ids = append(ids, lr.ID)
	}
	return total, ids, nil
}

// Unlink deletes a payroll item and releases everything it froze:
// timecards, claims and leave are unstamped, advance deductions are
// refunded.
func (s *Service) Unlink(ctx context.Context, actor jwt.Actor, itemID string) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		item, err := s.items.GetByID(txCtx, itemID, actor.CompanyID)
		if err != nil {
			return err
		}

		if err := s.timecards.ClearPayrollItem(txCtx, item.ID); err != nil {
			return err
		}
		if err := s.claims.ClearPayrollItem(txCtx, item.ID); err != nil {
			return err
		}
		if err := s.requests.ClearPayrollItem(txCtx, item.ID); err != nil {
			return err
		}
		if err := s.advances.RefundForPayrollItem(txCtx, item.CompanyID, item.ID); err != nil {
			return err
		}
		return s.items.Delete(txCtx, item.ID, item.CompanyID)
	})
}

// Get returns one payroll item.
func (s *Service) Get(ctx context.Context, actor jwt.Actor, itemID string) (payroll.PayrollItem, error) {
	return s.items.GetByID(ctx, itemID, actor.CompanyID)
}

// ListMonth lists a company's payroll items for one month.
func (s *Service) ListMonth(ctx context.Context, actor jwt.Actor, month, year int) ([]payroll.PayrollItem, error) {
	return s.items.ListByCompanyMonth(ctx, actor.CompanyID, month, year)
}
