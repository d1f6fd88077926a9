package claim

import (
	"testing"

	"github.com/gajihub/hr-backend-go/internal/domain/claim"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	threshold = decimal.NewFromInt(100)
	tolerance = decimal.NewFromInt(1)
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func mealRule() claim.CategoryRule {
	return claim.CategoryRule{Category: "meal", MaxAmount: decPtr("30.00"), AutoCap: true}
}

func fuelRule() claim.CategoryRule {
	return claim.CategoryRule{Category: "fuel", MaxAmount: decPtr("500.00"), ReceiptRequired: true}
}

func highAI(extracted string) *claim.AISignals {
	return &claim.AISignals{Confidence: "high", Extracted: decPtr(extracted)}
}

func TestEvaluateAutoCapThenAutoApprove(t *testing.T) {
	// A 45.00 meal claim against a 30.00 auto-cap category lands at
	// 30.00 and auto-approves when the receipt reads clean.
	d := Evaluate(mealRule(), dec("45.00"), highAI("45.00"), threshold, tolerance)

	assert.True(t, d.Amount.Equal(dec("30.00")))
	assert.Equal(t, claim.StatusApproved, d.Status)
	assert.True(t, d.AutoApproved)
	assert.False(t, d.MismatchIgnored)
	assert.Nil(t, d.PendingReason)
}

func TestEvaluateExceedsLimitWithoutAutoCap(t *testing.T) {
	d := Evaluate(fuelRule(), dec("620.00"), highAI("620.00"), threshold, tolerance)

	assert.True(t, d.Amount.Equal(dec("620.00")), "amount is not rewritten without auto_cap")
	assert.Equal(t, claim.StatusPending, d.Status)
	require.NotNil(t, d.PendingReason)
	assert.Contains(t, *d.PendingReason, "exceeds limit")
}

func TestEvaluateAmountMismatch(t *testing.T) {
	// Claimed 80.00 against a receipt reading 50.00 with tolerance 1.00.
	d := Evaluate(fuelRule(), dec("80.00"), highAI("50.00"), threshold, tolerance)

	assert.Equal(t, claim.StatusPending, d.Status)
	assert.True(t, d.MismatchIgnored)
	require.NotNil(t, d.PendingReason)
	assert.Contains(t, *d.PendingReason, "over-claim vs receipt")
	assert.False(t, d.AutoApproved)
}

func TestEvaluateWithinToleranceNoMismatch(t *testing.T) {
	d := Evaluate(fuelRule(), dec("50.80"), highAI("50.00"), threshold, tolerance)

	assert.False(t, d.MismatchIgnored)
	assert.Equal(t, claim.StatusApproved, d.Status)
	assert.True(t, d.AutoApproved)
}

func TestEvaluateLowConfidenceForcesReview(t *testing.T) {
	ai := &claim.AISignals{Confidence: "low", Extracted: decPtr("20.00")}
	d := Evaluate(mealRule(), dec("20.00"), ai, threshold, tolerance)

	assert.Equal(t, claim.StatusPending, d.Status)
	assert.False(t, d.AutoApproved)
	require.NotNil(t, d.PendingReason)
	assert.Contains(t, *d.PendingReason, "manual review")
}

func TestEvaluateUnreadableForcesReview(t *testing.T) {
	ai := &claim.AISignals{Confidence: "unreadable"}
	d := Evaluate(mealRule(), dec("20.00"), ai, threshold, tolerance)

	assert.Equal(t, claim.StatusPending, d.Status)
	assert.False(t, d.AutoApproved)
}

func TestEvaluateNoAISignalsNeverAutoApproves(t *testing.T) {
	d := Evaluate(mealRule(), dec("20.00"), nil, threshold, tolerance)

	assert.Equal(t, claim.StatusPending, d.Status)
	assert.False(t, d.AutoApproved)
	require.NotNil(t, d.PendingReason)
	assert.Contains(t, *d.PendingReason, "awaiting manual approval")
}

func TestEvaluateOverThresholdStaysPending(t *testing.T) {
	d := Evaluate(fuelRule(), dec("180.00"), highAI("180.00"), threshold, tolerance)

	assert.Equal(t, claim.StatusPending, d.Status)
	assert.False(t, d.AutoApproved)
}

func TestEvaluateMediumConfidenceAutoApproves(t *testing.T) {
	ai := &claim.AISignals{Confidence: "medium", Extracted: decPtr("25.00")}
	d := Evaluate(mealRule(), dec("25.00"), ai, threshold, tolerance)

	assert.Equal(t, claim.StatusApproved, d.Status)
	assert.True(t, d.AutoApproved)
}
