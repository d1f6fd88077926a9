package holiday

import "context"

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string, companyID string) (Holiday, error)
	Delete(ctx context.Context, id string, companyID string) error

	// ListForCompanyYear returns the holidays visible to a company in a
	// calendar year: its own rows plus global ones.
	ListForCompanyYear(ctx context.Context, companyID string, year int) ([]Holiday, error)
}
