package claim

import (
	"github.com/gajihub/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// AISignals is the receipt-reader output the engine consumes; producing
// it is an external concern.
type AISignals struct {
	ExtractedAmount *string `json:"extracted_amount,omitempty"`
	Confidence      string  `json:"confidence"`
	ReceiptHash     string  `json:"receipt_hash,omitempty"`

	// Parsed during validation
	Extracted *decimal.Decimal `json:"-"`
}

type SubmitClaimRequest struct {
	Date     string     `json:"date"` // YYYY-MM-DD
	Category string     `json:"category"`
	Amount   string     `json:"amount"`
	AI       *AISignals `json:"ai,omitempty"`

	Receipt         []byte `json:"-"`
	ReceiptFilename string `json:"-"`

	// Parsed during validation
	ParsedAmount decimal.Decimal `json:"-"`
}

func (r *SubmitClaimRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category is required"})
	}

	if !validator.IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be a decimal with at most two fractional digits"})
	} else {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil || !amount.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be positive"})
		} else {
			r.ParsedAmount = amount
		}
	}

	if r.AI != nil {
		if !Confidence(r.AI.Confidence).Valid() {
			errs = append(errs, validator.ValidationError{Field: "ai.confidence", Message: "confidence must be high, medium, low or unreadable"})
		}
		if r.AI.ExtractedAmount != nil {
			extracted, err := decimal.NewFromString(*r.AI.ExtractedAmount)
			if err != nil {
				errs = append(errs, validator.ValidationError{Field: "ai.extracted_amount", Message: "extracted_amount must be a decimal"})
			} else {
				r.AI.Extracted = &extracted
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectClaimRequest struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func (r *RejectClaimRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "rejection requires a reason"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkOutcome reports the result of one claim inside a bulk approval.
type BulkOutcome struct {
	ID     string `json:"id"`
	Status string `json:"status"` // approved / skipped / failed
	Detail string `json:"detail,omitempty"`
}

type ClaimResponse struct {
	ID                    string  `json:"id"`
	EmployeeID            string  `json:"employee_id"`
	EmployeeName          *string `json:"employee_name,omitempty"`
	Date                  string  `json:"date"`
	Category              string  `json:"category"`
	Amount                string  `json:"amount"`
	SubmittedAmount       string  `json:"submitted_amount"`
	ReceiptURL            *string `json:"receipt_url,omitempty"`
	AIExtractedAmount     *string `json:"ai_extracted_amount,omitempty"`
	AIConfidence          *string `json:"ai_confidence,omitempty"`
	AmountMismatchIgnored bool    `json:"amount_mismatch_ignored"`
	Status                string  `json:"status"`
	PendingReason         *string `json:"pending_reason,omitempty"`
	AutoApproved          bool    `json:"auto_approved"`
	RejectionReason       *string `json:"rejection_reason,omitempty"`
	LinkedToPayroll       bool    `json:"linked_to_payroll"`
}

func NewClaimResponse(c Claim) ClaimResponse {
	resp := ClaimResponse{
		ID:                    c.ID,
		EmployeeID:            c.EmployeeID,
		EmployeeName:          c.EmployeeName,
		Date:                  c.Date.Format("2006-01-02"),
		Category:              c.Category,
		Amount:                c.Amount.StringFixed(2),
		SubmittedAmount:       c.SubmittedAmount.StringFixed(2),
		ReceiptURL:            c.ReceiptURL,
		AmountMismatchIgnored: c.AmountMismatchIgnored,
		Status:                string(c.Status),
		PendingReason:         c.PendingReason,
		AutoApproved:          c.AutoApproved,
		RejectionReason:       c.RejectionReason,
		LinkedToPayroll:       c.Linked(),
	}
	if c.AIExtractedAmount != nil {
		s := c.AIExtractedAmount.StringFixed(2)
		resp.AIExtractedAmount = &s
	}
	if c.AIConfidence != nil {
		s := string(*c.AIConfidence)
		resp.AIConfidence = &s
	}
	return resp
}

func NewClaimResponses(cs []Claim) []ClaimResponse {
	out := make([]ClaimResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewClaimResponse(c))
	}
	return out
}

type CategoryRuleResponse struct {
	ID              string  `json:"id"`
	Category        string  `json:"category"`
	MaxAmount       *string `json:"max_amount,omitempty"`
	AutoCap         bool    `json:"auto_cap"`
	ReceiptRequired bool    `json:"receipt_required"`
}

func NewCategoryRuleResponse(r CategoryRule) CategoryRuleResponse {
	resp := CategoryRuleResponse{
		ID:              r.ID,
		Category:        r.Category,
		AutoCap:         r.AutoCap,
		ReceiptRequired: r.ReceiptRequired,
	}
	if r.MaxAmount != nil {
		s := r.MaxAmount.StringFixed(2)
		resp.MaxAmount = &s
	}
	return resp
}

func NewCategoryRuleResponses(rs []CategoryRule) []CategoryRuleResponse {
	out := make([]CategoryRuleResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewCategoryRuleResponse(r))
	}
	return out
}
