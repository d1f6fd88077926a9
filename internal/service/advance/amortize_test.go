package advance

import (
	"testing"

	"github.com/gajihub/hr-backend-go/internal/domain/advance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func installmentAdvance() advance.Advance {
	installment := dec("200.00")
	return advance.Advance{
		ID:                  "adv-1",
		Amount:              dec("600.00"),
		Method:              advance.MethodInstallment,
		InstallmentAmount:   &installment,
		FirstDeductionMonth: 7,
		FirstDeductionYear:  2025,
		TotalDeducted:       decimal.Zero,
		Status:              advance.StatusActive,
	}
}

func TestInstallmentRunsToCompletion(t *testing.T) {
	// 600.00 at 200.00/month starting July: three deductions, then done.
	a := installmentAdvance()

	for _, month := range []int{7, 8, 9} {
		due := DeductionFor(a, month, 2025)
		assert.True(t, due.Equal(dec("200.00")), "month %d", month)
		require.NoError(t, Apply(&a, due))
	}

	assert.True(t, a.TotalDeducted.Equal(dec("600.00")))
	assert.True(t, a.Remaining().IsZero())
	assert.Equal(t, advance.StatusCompleted, a.Status)
	assert.True(t, DeductionFor(a, 10, 2025).IsZero(), "nothing due once completed")
}

func TestDeductionNotDueBeforeFirstMonth(t *testing.T) {
	a := installmentAdvance()

	assert.True(t, DeductionFor(a, 6, 2025).IsZero())
	assert.True(t, DeductionFor(a, 12, 2024).IsZero())
	assert.False(t, DeductionFor(a, 1, 2026).IsZero(), "later years are due")
}

func TestFinalInstallmentClampedToRemainder(t *testing.T) {
	a := installmentAdvance()
	installment := dec("250.00")
	a.InstallmentAmount = &installment

	require.NoError(t, Apply(&a, DeductionFor(a, 7, 2025)))
	require.NoError(t, Apply(&a, DeductionFor(a, 8, 2025)))

	final := DeductionFor(a, 9, 2025)
	assert.True(t, final.Equal(dec("100.00")))
	require.NoError(t, Apply(&a, final))
	assert.Equal(t, advance.StatusCompleted, a.Status)
}

func TestFullMethodTakesRemainder(t *testing.T) {
	a := installmentAdvance()
	a.Method = advance.MethodFull
	a.InstallmentAmount = nil

	due := DeductionFor(a, 7, 2025)
	assert.True(t, due.Equal(dec("600.00")))
	require.NoError(t, Apply(&a, due))
	assert.Equal(t, advance.StatusCompleted, a.Status)
}

func TestApplyOverDeductionRejected(t *testing.T) {
	a := installmentAdvance()
	err := Apply(&a, dec("700.00"))
	assert.ErrorIs(t, err, advance.ErrOverDeduction)
}

func TestRefundReactivatesCompletedAdvance(t *testing.T) {
	a := installmentAdvance()
	require.NoError(t, Apply(&a, dec("600.00")))
	require.Equal(t, advance.StatusCompleted, a.Status)

	require.NoError(t, Refund(&a, dec("200.00")))
	assert.Equal(t, advance.StatusActive, a.Status)
	assert.True(t, a.Remaining().Equal(dec("200.00")))

	assert.ErrorIs(t, Refund(&a, dec("500.00")), advance.ErrRefundExceedsPaid)
}
