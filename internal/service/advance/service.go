package advance

import (
	"context"

	"github.com/gajihub/hr-backend-go/internal/domain/advance"
	"github.com/gajihub/hr-backend-go/internal/domain/company"
	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/pkg/clock"
	"github.com/gajihub/hr-backend-go/internal/pkg/database"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

// Service records salary advances and books their payroll deductions.
// Record and Cancel are admin operations; Deduct and Refund are called
// by the payroll linkage inside its transaction.
type Service struct {
	db        *database.DB
	advances  advance.AdvanceRepository
	employees employee.EmployeeRepository
	companies company.CompanyRepository

	clockFor func(timezone string) clock.Clock
}

func NewService(
	db *database.DB,
	advances advance.AdvanceRepository,
	employees employee.EmployeeRepository,
	companies company.CompanyRepository,
) *Service {
	return &Service{
		db:        db,
		advances:  advances,
		employees: employees,
		companies: companies,
		clockFor:  clock.New,
	}
}

// Record creates an advance for an employee.
func (s *Service) Record(ctx context.Context, actor jwt.Actor, req *advance.RecordAdvanceRequest) (advance.Advance, error) {
	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return advance.Advance{}, err
	}
	now := s.clockFor(comp.Timezone).Now()

	if err := req.Validate(now); err != nil {
		return advance.Advance{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID, actor.CompanyID)
	if err != nil {
		return advance.Advance{}, err
	}
	if emp.Status != employee.StatusActive {
		return advance.Advance{}, employee.ErrEmployeeInactive
	}

	return s.advances.Create(ctx, advance.Advance{
		CompanyID:           comp.ID,
		EmployeeID:          emp.ID,
		Amount:              req.ParsedAmount,
		Method:              advance.Method(req.Method),
		InstallmentAmount:   req.ParsedInstallment,
		FirstDeductionMonth: req.FirstDeductionMonth,
		FirstDeductionYear:  req.FirstDeductionYear,
		TotalDeducted:       decimal.Zero,
		Status:              advance.StatusActive,
		Reason:              req.Reason,
	})
}

// Cancel stops an active advance before payroll recovers it.
func (s *Service) Cancel(ctx context.Context, actor jwt.Actor, id string) (advance.Advance, error) {
	var result advance.Advance
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		a, err := s.advances.GetByIDForUpdate(txCtx, id, actor.CompanyID)
		if err != nil {
			return err
		}
		if a.Status != advance.StatusActive {
			return advance.ErrNotActive
		}
		a.Status = advance.StatusCancelled
		if err := s.advances.Update(txCtx, a); err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return advance.Advance{}, err
	}
	return result, nil
}

// ListByEmployee lists an employee's advances.
func (s *Service) ListByEmployee(ctx context.Context, actor jwt.Actor, employeeID string) ([]advance.Advance, error) {
	if _, err := s.employees.GetByID(ctx, employeeID, actor.CompanyID); err != nil {
		return nil, err
	}
	return s.advances.ListByEmployee(ctx, employeeID)
}

// MonthlyDeduction previews the line items payroll would take for an
// employee's month without booking anything.
func (s *Service) MonthlyDeduction(ctx context.Context, actor jwt.Actor, employeeID string, month, year int) ([]advance.DeductionLine, decimal.Decimal, error) {
	advances, err := s.advances.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	var lines []advance.DeductionLine
	total := decimal.Zero
	for _, a := range advances {
		due := DeductionFor(a, month, year)
		if due.IsZero() {
			continue
		}
		lines = append(lines, advance.DeductionLine{AdvanceID: a.ID, Amount: due})
		total = total.Add(due)
	}
	return lines, total, nil
}

// Deduct books the month's deductions for an employee against a
// payroll item. Must run inside the caller's transaction; rows are
// locked here.
func (s *Service) Deduct(ctx context.Context, employeeID, payrollItemID string, month, year int) (decimal.Decimal, error) {
	advances, err := s.advances.LockActiveDue(ctx, employeeID, month, year)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range advances {
		due := DeductionFor(a, month, year)
		if due.IsZero() {
			continue
		}
		if err := Apply(&a, due); err != nil {
			return decimal.Zero, err
		}
		if err := s.advances.Update(ctx, a); err != nil {
			return decimal.Zero, err
		}
		if _, err := s.advances.CreateDeduction(ctx, advance.Deduction{
			AdvanceID:     a.ID,
			PayrollItemID: payrollItemID,
			Amount:        due,
			Month:         month,
			Year:          year,
		}); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(due)
	}
	return total, nil
}

// RefundForPayrollItem reverses every deduction booked against a
// payroll item. Must run inside the caller's transaction.
func (s *Service) RefundForPayrollItem(ctx context.Context, companyID, payrollItemID string) error {
	deductions, err := s.advances.ListDeductionsByPayrollItem(ctx, payrollItemID)
	if err != nil {
		return err
	}
	for _, d := range deductions {
		a, err := s.advances.GetByIDForUpdate(ctx, d.AdvanceID, companyID)
		if err != nil {
			return err
		}
		if err := Refund(&a, d.Amount); err != nil {
			return err
		}
		if err := s.advances.Update(ctx, a); err != nil {
			return err
		}
	}
	return s.advances.DeleteDeductionsByPayrollItem(ctx, payrollItemID)
}
