package leave

import (
	"context"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/employee"
	"github.com/gajihub/hr-backend-go/internal/domain/leave"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
)

type BalanceService struct {
	balances  leave.LeaveBalanceRepository
	types     leave.LeaveTypeRepository
	employees employee.EmployeeRepository
}

func NewBalanceService(
	balances leave.LeaveBalanceRepository,
	types leave.LeaveTypeRepository,
	employees employee.EmployeeRepository,
) *BalanceService {
	return &BalanceService{balances: balances, types: types, employees: employees}
}

// CarryForward computes the days moved into a new year from last
// year's remainder, clamped to the type's cap.
func CarryForward(previousAvailable float64, cap *float64) float64 {
	if previousAvailable <= 0 {
		return 0
	}
	if cap != nil && previousAvailable > *cap {
		return *cap
	}
	return previousAvailable
}

// ListMine returns the actor's balances for a year, one row per paid
// leave type the company configures.
func (s *BalanceService) ListMine(ctx context.Context, actor jwt.Actor, year int) ([]leave.BalanceResponse, error) {
	types, err := s.types.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	balances, err := s.balances.ListByEmployeeYear(ctx, actor.EmployeeID, year)
	if err != nil {
		return nil, err
	}
	byType := make(map[string]leave.LeaveBalance, len(balances))
	for _, b := range balances {
		byType[b.LeaveTypeID] = b
	}

	emp, err := s.employees.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	var out []leave.BalanceResponse
	for _, lt := range types {
		if !lt.IsPaid {
			continue
		}
		resp := leave.BalanceResponse{
			LeaveTypeID:   lt.ID,
			LeaveTypeCode: lt.Code,
			Year:          year,
		}
		if b, ok := byType[lt.ID]; ok {
			resp.EntitledDays = b.EntitledDays
			resp.CarriedForward = b.CarriedForward
			resp.UsedDays = b.UsedDays
			resp.AvailableDays = b.Available()
		} else {
			// Not yet materialized; show the entitlement it would open with.
			entitled := Entitlement(lt, emp.CompletedServiceYears(startOfYear(year)))
			resp.EntitledDays = entitled
			resp.AvailableDays = entitled
		}
		out = append(out, resp)
	}
	return out, nil
}

// OpenYear materializes an employee's balances for a new year, carrying
// forward last year's remainder where the type allows it. Idempotent:
// existing rows are left alone.
func (s *BalanceService) OpenYear(ctx context.Context, companyID, employeeID string, year int) error {
	emp, err := s.employees.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return err
	}
	types, err := s.types.ListByCompany(ctx, companyID)
	if err != nil {
		return err
	}

	for _, lt := range types {
		if !lt.IsPaid {
			continue
		}
		if _, err := s.balances.Get(ctx, employeeID, lt.ID, year); err == nil {
			continue
		} else if err != leave.ErrBalanceNotFound {
			return err
		}

		var carried float64
		if lt.CarriesForward {
			if prev, err := s.balances.Get(ctx, employeeID, lt.ID, year-1); err == nil {
				carried = CarryForward(prev.Available(), lt.CarryForwardCap)
			} else if err != leave.ErrBalanceNotFound {
				return err
			}
		}

		_, err := s.balances.Create(ctx, leave.LeaveBalance{
			EmployeeID:     employeeID,
			LeaveTypeID:    lt.ID,
			Year:           year,
			EntitledDays:   Entitlement(lt, emp.CompletedServiceYears(startOfYear(year))),
			CarriedForward: carried,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func startOfYear(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
