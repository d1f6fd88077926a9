package company

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupingMode determines how a company organizes employees and how
// approvals are routed. It is locked once the first employee exists.
type GroupingMode string

const (
	GroupingOutlet     GroupingMode = "outlet"
	GroupingDepartment GroupingMode = "department"
)

type Company struct {
	ID           string
	Name         string
	GroupingMode GroupingMode
	Timezone     string

	// Policy knobs, seeded from config defaults
	StandardWorkMinutes  int
	AutoApproveThreshold decimal.Decimal
	MismatchTolerance    decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Outlet struct {
	ID        string
	CompanyID string
	Name      string
	Address   *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Department struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
