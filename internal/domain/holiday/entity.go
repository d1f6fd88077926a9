package holiday

import "time"

// Holiday is a non-working calendar day. CompanyID nil means the
// holiday applies to every company.
type Holiday struct {
	ID        string
	CompanyID *string
	Name      string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (h Holiday) Global() bool {
	return h.CompanyID == nil
}
