package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLeaveTypes(t *testing.T) {
	types := DefaultLeaveTypes("company-1")
	require.NotEmpty(t, types)

	byCode := make(map[string]int)
	for _, lt := range types {
		byCode[lt.Code]++
		assert.Equal(t, "company-1", lt.CompanyID)
	}
	for code, n := range byCode {
		assert.Equal(t, 1, n, "duplicate code %s", code)
	}

	annual := types[0]
	require.Equal(t, "ANNUAL", annual.Code)
	require.Len(t, annual.Steps, 3)
	// Statutory tiers: 8 under 2 years, 12 under 5, 16 after.
	assert.Equal(t, float64(8), annual.Steps[0].Days)
	assert.Equal(t, float64(12), annual.Steps[1].Days)
	assert.Equal(t, float64(16), annual.Steps[2].Days)
	assert.True(t, annual.CarriesForward)

	for _, lt := range types {
		switch lt.Code {
		case "MATERNITY":
			assert.True(t, lt.IsConsecutive)
			require.NotNil(t, lt.GenderRestriction)
			assert.Equal(t, "female", *lt.GenderRestriction)
			assert.Equal(t, float64(98), lt.DefaultDays)
		case "PATERNITY":
			assert.True(t, lt.IsConsecutive)
			require.NotNil(t, lt.GenderRestriction)
			assert.Equal(t, "male", *lt.GenderRestriction)
			assert.Equal(t, float64(7), lt.DefaultDays)
		case "UNPAID":
			assert.False(t, lt.IsPaid)
		}
	}
}

func TestDefaultClaimCategories(t *testing.T) {
	rules := DefaultClaimCategories("company-1")
	require.NotEmpty(t, rules)

	seen := make(map[string]bool)
	for _, rule := range rules {
		assert.False(t, seen[rule.Category], "duplicate category %s", rule.Category)
		seen[rule.Category] = true
		if rule.AutoCap {
			assert.NotNil(t, rule.MaxAmount, "%s auto-caps without a maximum", rule.Category)
		}
	}
	assert.True(t, seen["meal"])
	assert.True(t, seen["other"])
}
