package claim

import (
	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/shopspring/decimal"
)

// Disposition is the outcome of running a submitted claim through the
// category rules and AI signals.
type Disposition struct {
	Amount          decimal.Decimal
	Status          claim.Status
	PendingReason   *string
	AutoApproved    bool
	MismatchIgnored bool
}

// Evaluate runs the capping and review rules. It never touches storage;
// duplicate-receipt checks happen in the service.
func Evaluate(rule claim.CategoryRule, submitted decimal.Decimal, ai *claim.AISignals, autoApproveThreshold, tolerance decimal.Decimal) Disposition {
	d := Disposition{Amount: submitted, Status: claim.StatusPending}
	var reasons []string

	withinCap := true
	if rule.MaxAmount != nil && submitted.GreaterThan(*rule.MaxAmount) {
		if rule.AutoCap {
			d.Amount = *rule.MaxAmount
		} else {
			withinCap = false
			reasons = append(reasons, "exceeds limit")
		}
	}

	aiTrusted := false
	if ai != nil {
		switch claim.Confidence(ai.Confidence) {
		case claim.ConfidenceHigh, claim.ConfidenceMedium:
			aiTrusted = true
		default:
			reasons = append(reasons, "receipt requires manual review")
		}

		// The capped amount is what gets paid, so it is what the
		// receipt must support.
		if ai.Extracted != nil && d.Amount.GreaterThan(ai.Extracted.Add(tolerance)) {
			d.MismatchIgnored = true
			reasons = append(reasons, "over-claim vs receipt")
		}
	}

	if withinCap && aiTrusted && !d.MismatchIgnored && d.Amount.LessThanOrEqual(autoApproveThreshold) {
		d.Status = claim.StatusApproved
		d.AutoApproved = true
		return d
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "awaiting manual approval")
	}
	reason := reasons[0]
	for _, r := range reasons[1:] {
		reason += "; " + r
	}
	d.PendingReason = &reason
	return d
}
