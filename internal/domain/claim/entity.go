package claim

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Confidence levels reported by the external receipt reader.
type Confidence string

const (
	ConfidenceHigh       Confidence = "high"
	ConfidenceMedium     Confidence = "medium"
	ConfidenceLow        Confidence = "low"
	ConfidenceUnreadable Confidence = "unreadable"
)

func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceUnreadable:
		return true
	}
	return false
}

// CategoryRule is the per-company configuration of one claim category.
type CategoryRule struct {
	ID              string
	CompanyID       string
	Category        string
	MaxAmount       *decimal.Decimal
	AutoCap         bool
	ReceiptRequired bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Claim is an employee expense claim. Once linked to a payroll item it
// is immutable until the item is deleted.
type Claim struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	Category   string

	// Amount is the payable amount; auto-cap rewrites it down to the
	// category maximum. SubmittedAmount keeps what was claimed.
	Amount          decimal.Decimal
	SubmittedAmount decimal.Decimal

	ReceiptURL *string

	AIExtractedAmount *decimal.Decimal
	AIConfidence      *Confidence
	ReceiptHash       *string

	AmountMismatchIgnored bool

	Status        Status
	PendingReason *string
	AutoApproved  bool

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	LinkedPayrollItemID *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	EmployeeName *string
}

func (c *Claim) Linked() bool {
	return c.LinkedPayrollItemID != nil
}
