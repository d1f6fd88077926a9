package holiday

import (
	"context"

	"github.com/gajihub/hr-backend-go/internal/domain/holiday"
	"github.com/gajihub/hr-backend-go/internal/pkg/jwt"
	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
	"github.com/gajihub/hr-backend-go/internal/service/workingday"
)

// Service manages company holidays. Every write invalidates the
// working-day calculator's cached holiday sets.
type Service struct {
	holidays    holiday.HolidayRepository
	workingDays *workingday.Calculator
}

func NewService(holidays holiday.HolidayRepository, workingDays *workingday.Calculator) *Service {
	return &Service{holidays: holidays, workingDays: workingDays}
}

// Create adds a company-scoped holiday.
func (s *Service) Create(ctx context.Context, actor jwt.Actor, req *holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	existing, err := s.holidays.ListForCompanyYear(ctx, actor.CompanyID, date.Year())
	if err != nil {
		return holiday.Holiday{}, err
	}
	for _, h := range existing {
		if h.Date.Equal(date) {
			return holiday.Holiday{}, holiday.ErrDuplicateHoliday
		}
	}

	created, err := s.holidays.Create(ctx, holiday.Holiday{
		CompanyID: &actor.CompanyID,
		Name:      req.Name,
		Date:      date,
	})
	if err != nil {
		return holiday.Holiday{}, err
	}

	s.workingDays.Invalidate(&actor.CompanyID)
	return created, nil
}

// Delete removes a company-scoped holiday.
func (s *Service) Delete(ctx context.Context, actor jwt.Actor, id string) error {
	if err := s.holidays.Delete(ctx, id, actor.CompanyID); err != nil {
		return err
	}
	s.workingDays.Invalidate(&actor.CompanyID)
	return nil
}

// List returns the holidays visible to the company in a year.
func (s *Service) List(ctx context.Context, actor jwt.Actor, year int) ([]holiday.Holiday, error) {
	return s.holidays.ListForCompanyYear(ctx, actor.CompanyID, year)
}
